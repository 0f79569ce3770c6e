package encoder

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisy(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x*255/w) ^ uint8(rng.Intn(64)),
				G: uint8(y*255/h) ^ uint8(rng.Intn(64)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func TestRegistry_LookupByExtension(t *testing.T) {
	r := NewRegistry()

	for ext, format := range map[string]string{
		"jpg":  "jpeg",
		"JPEG": "jpeg",
		".png": "png",
		"gif":  "gif",
		"tif":  "tiff",
		"tiff": "tiff",
		"bmp":  "bmp",
	} {
		enc, err := r.Lookup(ext)
		require.NoError(t, err, ext)
		assert.Equal(t, format, enc.Format(), ext)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()

	for _, ext := range []string{"unknownext", "", "."} {
		enc, err := r.Lookup(ext)
		assert.Nil(t, enc)

		var ufe *UnsupportedFormatError
		require.True(t, errors.As(err, &ufe), "ext %q: %v", ext, err)
	}
}

func TestRegistry_StringListsFormats(t *testing.T) {
	r := NewRegistry()
	assert.Contains(t, r.String(), "jpeg")
	assert.Contains(t, r.String(), "png")
	assert.Equal(t, "no encoders available", (&Registry{byExt: map[string]Encoder{}}).String())
}

type stubEncoder struct{ format string }

func (s *stubEncoder) Format() string                                   { return s.format }
func (s *stubEncoder) Extensions() []string                             { return []string{s.format} }
func (s *stubEncoder) Available() bool                                  { return true }
func (s *stubEncoder) Capabilities() Capabilities                       { return Capabilities{} }
func (s *stubEncoder) DefaultParams() Params                            { return Params{} }
func (s *stubEncoder) Encode(_ io.Writer, _ image.Image, _ Params) error { return nil }

func TestRegistry_RegisterReplacesSameFormat(t *testing.T) {
	r := NewRegistry()
	before := len(r.Encoders())

	stub := &stubEncoder{format: "png"}
	r.Register(stub)

	enc, err := r.Lookup("png")
	require.NoError(t, err)
	assert.Same(t, stub, enc)
	assert.Len(t, r.Encoders(), before)
}

func TestRegistry_RegisterDropsReplacedExtensions(t *testing.T) {
	r := NewRegistry()

	stub := &stubEncoder{format: "jpeg"}
	r.Register(stub)

	enc, err := r.Lookup("jpeg")
	require.NoError(t, err)
	assert.Same(t, stub, enc)

	for _, ext := range []string{"jpg", "jpe"} {
		_, err := r.Lookup(ext)
		var ufe *UnsupportedFormatError
		assert.True(t, errors.As(err, &ufe), ext)
	}
	for _, e := range r.Encoders() {
		_, isJPEG := e.(*JPEGEncoder)
		assert.False(t, isJPEG)
	}
}

func TestCapabilities(t *testing.T) {
	assert.True(t, (&JPEGEncoder{}).Capabilities().Compression)
	assert.True(t, (&WebPEncoder{}).Capabilities().Compression)
	assert.True(t, (&AVIFEncoder{}).Capabilities().Compression)

	for _, enc := range []Encoder{&PNGEncoder{}, &GIFEncoder{}, &TIFFEncoder{}, &BMPEncoder{}} {
		caps := enc.Capabilities()
		assert.False(t, caps.Compression, enc.Format())
		assert.False(t, caps.Progressive, enc.Format())
	}
}

func TestJPEG_DefaultParams(t *testing.T) {
	p := (&JPEGEncoder{}).DefaultParams()
	assert.Equal(t, ModeCopyFromMetadata, p.CompressionMode)
	assert.Equal(t, ModeCopyFromMetadata, p.ProgressiveMode)
	assert.InDelta(t, 0.75, p.CompressionQuality, 1e-9)
}

func TestJPEG_QualityMonotonic(t *testing.T) {
	enc := &JPEGEncoder{}

	for seed := int64(1); seed <= 3; seed++ {
		img := noisy(96, 64, seed)

		var hi, lo bytes.Buffer
		require.NoError(t, enc.Encode(&hi, img, Params{CompressionMode: ModeExplicit, CompressionQuality: 1.0}))
		require.NoError(t, enc.Encode(&lo, img, Params{CompressionMode: ModeExplicit, CompressionQuality: 0.2}))

		assert.GreaterOrEqual(t, hi.Len(), lo.Len(), "seed %d", seed)
	}
}

func TestJPEG_ProgressiveWhenAvailable(t *testing.T) {
	enc := &JPEGEncoder{}
	if !enc.Capabilities().Progressive {
		t.Skip("jpegtran not installed")
	}

	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, noisy(64, 64, 7), Params{
		CompressionMode:    ModeExplicit,
		CompressionQuality: 0.9,
		ProgressiveMode:    ModeDefault,
	}))

	// SOF2 marks a progressive DCT frame.
	assert.True(t, bytes.Contains(buf.Bytes(), []byte{0xFF, 0xC2}))

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
}

func TestLossless_IgnoreParams(t *testing.T) {
	img := noisy(16, 8, 3)
	params := Params{CompressionMode: ModeExplicit, CompressionQuality: 0.1, ProgressiveMode: ModeDefault}

	for _, enc := range []Encoder{&PNGEncoder{}, &GIFEncoder{}, &TIFFEncoder{}, &BMPEncoder{}} {
		var buf bytes.Buffer
		require.NoError(t, enc.Encode(&buf, img, params), enc.Format())
		assert.NotZero(t, buf.Len(), enc.Format())
	}

	var buf bytes.Buffer
	require.NoError(t, (&PNGEncoder{}).Encode(&buf, img, params))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, decoded.(*image.RGBA).Pix)
}

func TestExternalEncoders(t *testing.T) {
	img := noisy(32, 32, 11)
	for _, enc := range []Encoder{&WebPEncoder{}, &AVIFEncoder{}} {
		if !enc.Available() {
			t.Logf("%s: encoder binary not installed, skipping", enc.Format())
			continue
		}
		var buf bytes.Buffer
		require.NoError(t, enc.Encode(&buf, img, Params{CompressionMode: ModeExplicit, CompressionQuality: 0.5}))
		assert.NotZero(t, buf.Len(), enc.Format())
	}
}

func TestValidQuality(t *testing.T) {
	assert.True(t, ValidQuality(0))
	assert.True(t, ValidQuality(0.8))
	assert.True(t, ValidQuality(1))
	assert.False(t, ValidQuality(-0.01))
	assert.False(t, ValidQuality(1.5))
	assert.False(t, ValidQuality(math.NaN()))
}

func TestQualityFor(t *testing.T) {
	assert.Equal(t, 75, qualityFor(Params{CompressionMode: ModeCopyFromMetadata, CompressionQuality: 0.1}, 75, 1))
	assert.Equal(t, 100, qualityFor(Params{CompressionMode: ModeExplicit, CompressionQuality: 1}, 75, 1))
	assert.Equal(t, 1, qualityFor(Params{CompressionMode: ModeExplicit, CompressionQuality: 0}, 75, 1))
	assert.Equal(t, 0, qualityFor(Params{CompressionMode: ModeExplicit, CompressionQuality: 0}, 75, 0))
	assert.Equal(t, 80, qualityFor(Params{CompressionMode: ModeExplicit, CompressionQuality: 0.8}, 75, 1))
}
