package encoder

import (
	"errors"
	"image"
	"io"
	"math"
)

// Mode controls how an encoder treats one write-parameter axis.
type Mode int

const (
	// ModeDisabled turns the feature off (e.g. baseline instead of progressive).
	ModeDisabled Mode = iota
	// ModeDefault turns the feature on with the encoder's own settings.
	ModeDefault
	// ModeExplicit uses the value set in Params.
	ModeExplicit
	// ModeCopyFromMetadata keeps whatever the encoder would pick on its own.
	ModeCopyFromMetadata
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeDefault:
		return "default"
	case ModeExplicit:
		return "explicit"
	case ModeCopyFromMetadata:
		return "copy-from-metadata"
	}
	return "unknown"
}

// ErrQualityRange is returned when a compression quality outside [0, 1]
// is applied to an encoder that supports compression control.
var ErrQualityRange = errors.New("compression quality must be within [0, 1]")

// Params is the per-write parameter set of an encoder.
type Params struct {
	CompressionMode    Mode
	CompressionQuality float64 // 0.0 (smallest) to 1.0 (best)
	ProgressiveMode    Mode
}

// Capabilities reports which write-parameter axes an encoder honours.
type Capabilities struct {
	Compression bool
	Progressive bool
}

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp", "avif", "png").
	Format() string

	// Extensions returns the file extensions (without dot) the encoder is
	// selected for. The first one is canonical.
	Extensions() []string

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp, avifenc) may not be installed.
	Available() bool

	Capabilities() Capabilities

	// DefaultParams returns a fresh parameter set with the encoder's defaults.
	DefaultParams() Params

	// Encode writes img to w using p.
	Encode(w io.Writer, img image.Image, p Params) error
}

// ValidQuality reports whether q is usable as a compression quality.
func ValidQuality(q float64) bool {
	return !math.IsNaN(q) && q >= 0 && q <= 1
}

// percent maps a [0, 1] quality onto the integer scale [lo, 100].
func percent(q float64, lo int) int {
	v := int(math.Round(q * 100))
	if v < lo {
		return lo
	}
	if v > 100 {
		return 100
	}
	return v
}

// qualityFor resolves the effective integer quality for p.
func qualityFor(p Params, def, lo int) int {
	if p.CompressionMode != ModeExplicit {
		return def
	}
	return percent(p.CompressionQuality, lo)
}
