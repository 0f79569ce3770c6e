package encoder

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError reports that no encoder is registered for an extension.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported format: destination has no file extension"
	}
	return fmt.Sprintf("unsupported format: no encoder for %q", e.Extension)
}

// Registry maps file extensions to encoders.
type Registry struct {
	byExt   map[string]Encoder
	ordered []Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		byExt: make(map[string]Encoder),
	}

	// Register all encoders. Only available ones will be used.
	all := []Encoder{
		&JPEGEncoder{},
		&PNGEncoder{},
		&WebPEncoder{},
		&AVIFEncoder{},
		&GIFEncoder{},
		&TIFFEncoder{},
		&BMPEncoder{},
	}

	for _, enc := range all {
		if enc.Available() {
			r.Register(enc)
		}
	}

	return r
}

// Register adds enc under each of its extensions, replacing any encoder
// previously registered for the same extension. An encoder of the same
// format is removed entirely, including extensions enc does not claim.
func (r *Registry) Register(enc Encoder) {
	replaced := -1
	for i, e := range r.ordered {
		if e.Format() == enc.Format() {
			replaced = i
			for ext, old := range r.byExt {
				if old == e {
					delete(r.byExt, ext)
				}
			}
			break
		}
	}
	for _, ext := range enc.Extensions() {
		r.byExt[strings.ToLower(ext)] = enc
	}
	if replaced >= 0 {
		r.ordered[replaced] = enc
		return
	}
	r.ordered = append(r.ordered, enc)
}

// Lookup returns the encoder registered for ext (with or without a leading dot).
func (r *Registry) Lookup(ext string) (Encoder, error) {
	key := strings.ToLower(strings.TrimPrefix(ext, "."))
	if enc, ok := r.byExt[key]; ok && key != "" {
		return enc, nil
	}
	return nil, &UnsupportedFormatError{Extension: ext}
}

// Encoders returns the registered encoders in registration order.
func (r *Registry) Encoders() []Encoder {
	out := make([]Encoder, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	if len(r.ordered) == 0 {
		return "no encoders available"
	}
	names := make([]string, 0, len(r.ordered))
	for _, enc := range r.ordered {
		names = append(names, enc.Format())
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}
