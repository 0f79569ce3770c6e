// Package saver writes images to disk, picking the encoder from the
// destination's file extension.
package saver

import (
	"bufio"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/AnyUserName/rasterio/internal/encoder"
)

// DefaultQuality is the compression quality used when none is given.
const DefaultQuality = 0.8

// Options are the per-call write options. The zero value is the same as
// DefaultOptions.
type Options struct {
	// Quality in [0, 1]. Only applied by encoders with a compression axis.
	// nil means DefaultQuality.
	Quality *float64
	// Progressive forces progressive (true) or baseline (false) output on
	// encoders that support it. nil keeps the encoder's default.
	Progressive *bool
}

// DefaultOptions returns quality 0.8 with progressive mode unset.
func DefaultOptions() Options {
	return Options{}
}

// WithQuality returns a copy of o with Quality set to q.
func (o Options) WithQuality(q float64) Options {
	o.Quality = &q
	return o
}

// QualityOrDefault returns the requested quality, or DefaultQuality when
// none was set.
func (o Options) QualityOrDefault() float64 {
	if o.Quality == nil {
		return DefaultQuality
	}
	return *o.Quality
}

// WithProgressive returns a copy of o with Progressive set to p.
func (o Options) WithProgressive(p bool) Options {
	o.Progressive = &p
	return o
}

// ExtensionOf returns the text after the last dot of path's final element,
// or "" when there is none.
func ExtensionOf(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}

// Saver encodes images through a registry of encoders.
type Saver struct {
	registry *encoder.Registry
	log      zerolog.Logger
}

// New returns a Saver using reg. A nil reg means encoder.NewRegistry().
func New(reg *encoder.Registry, log zerolog.Logger) *Saver {
	if reg == nil {
		reg = encoder.NewRegistry()
	}
	return &Saver{registry: reg, log: log}
}

// Registry returns the encoders the saver selects from.
func (s *Saver) Registry() *encoder.Registry { return s.registry }

var defaultSaver = New(nil, zerolog.Nop())

// Save writes img to path with the default saver.
func Save(img image.Image, path string, opts Options) (string, error) {
	return defaultSaver.Save(img, path, opts)
}

// Params resolves the encoder for path and the write parameters opts maps
// to. Axes the encoder does not support are left at its defaults.
func (s *Saver) Params(path string, opts Options) (encoder.Encoder, encoder.Params, error) {
	enc, err := s.registry.Lookup(ExtensionOf(path))
	if err != nil {
		return nil, encoder.Params{}, err
	}

	params := enc.DefaultParams()
	caps := enc.Capabilities()

	if caps.Compression {
		q := opts.QualityOrDefault()
		if !encoder.ValidQuality(q) {
			return nil, encoder.Params{}, errors.Wrapf(encoder.ErrQualityRange, "quality %v", q)
		}
		params.CompressionMode = encoder.ModeExplicit
		params.CompressionQuality = q
	}

	if caps.Progressive && opts.Progressive != nil {
		if *opts.Progressive {
			params.ProgressiveMode = encoder.ModeDefault
		} else {
			params.ProgressiveMode = encoder.ModeDisabled
		}
	}

	return enc, params, nil
}

// Save encodes img into the file at path, creating or truncating it, and
// returns path. A failed encode may leave a partial file behind.
func (s *Saver) Save(img image.Image, path string, opts Options) (out string, err error) {
	if img == nil {
		return "", errors.New("save: nil image")
	}

	enc, params, err := s.Params(path, opts)
	if err != nil {
		return "", err
	}

	s.log.Debug().
		Str("path", path).
		Str("format", enc.Format()).
		Stringer("compression", params.CompressionMode).
		Float64("quality", params.CompressionQuality).
		Stringer("progressive", params.ProgressiveMode).
		Msg("encoding")

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			out, err = "", errors.Wrap(cerr, "close output")
		}
	}()

	w := bufio.NewWriterSize(f, 64*1024)
	if err := enc.Encode(w, img, params); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("encode failed")
		return "", errors.Wrapf(err, "encode %s", enc.Format())
	}
	if err := w.Flush(); err != nil {
		return "", errors.Wrap(err, "write output")
	}

	s.log.Info().Str("path", path).Str("format", enc.Format()).Msg("saved")
	return path, nil
}
