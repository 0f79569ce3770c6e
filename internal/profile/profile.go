package profile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/rasterio/internal/encoder"
	"github.com/AnyUserName/rasterio/internal/saver"
)

// Preset is a named set of write options.
type Preset struct {
	Name        string  `yaml:"-"`
	Quality     float64 `yaml:"quality"`
	Progressive *bool   `yaml:"progressive,omitempty"` // nil = encoder default
}

func boolPtr(b bool) *bool { return &b }

// Built-in presets.
var builtin = map[string]Preset{
	"default": {
		Name:    "default",
		Quality: saver.DefaultQuality,
	},
	"web": {
		Name:        "web",
		Quality:     0.82,
		Progressive: boolPtr(true),
	},
	"archive": {
		Name:        "archive",
		Quality:     0.95,
		Progressive: boolPtr(false),
	},
	"thumbnail": {
		Name:    "thumbnail",
		Quality: 0.6,
	},
}

// Set is a collection of presets keyed by name.
type Set map[string]Preset

// Builtin returns a copy of the built-in presets.
func Builtin() Set {
	s := make(Set, len(builtin))
	for k, v := range builtin {
		s[k] = v
	}
	return s
}

// Get returns a preset by name. Falls back to default if unknown.
func (s Set) Get(name string) Preset {
	if p, ok := s[name]; ok {
		return p
	}
	p := s["default"]
	if p.Name == "" {
		p = builtin["default"]
	}
	p.Name = name // preserve requested name
	return p
}

// Names returns the preset names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Get returns a built-in preset by name. Falls back to default if unknown.
func Get(name string) Preset {
	return Builtin().Get(name)
}

// Options converts the preset into saver options.
func (p Preset) Options() saver.Options {
	o := saver.DefaultOptions().WithQuality(p.Quality)
	if p.Progressive != nil {
		o = o.WithProgressive(*p.Progressive)
	}
	return o
}

type filePreset struct {
	Quality     *float64 `yaml:"quality"`
	Progressive *bool    `yaml:"progressive"`
}

type file struct {
	Presets map[string]filePreset `yaml:"presets"`
}

// Load reads presets from a YAML file and merges them over the built-ins.
// Keys a preset leaves out keep the value of the built-in preset of the same
// name, or of "default" for new presets:
//
//	presets:
//	  web:
//	    quality: 0.85
//	    progressive: true
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	set := Builtin()
	for name, fp := range f.Presets {
		p := set.Get(name)
		if fp.Quality != nil {
			if !encoder.ValidQuality(*fp.Quality) {
				return nil, fmt.Errorf("preset %q: %w", name, encoder.ErrQualityRange)
			}
			p.Quality = *fp.Quality
		}
		if fp.Progressive != nil {
			p.Progressive = boolPtr(*fp.Progressive)
		}
		set[name] = p
	}
	return set, nil
}
