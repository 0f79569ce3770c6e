package encoder

import (
	"image"
	"image/gif"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// PNG is lossless and has no quality or interlace axis here.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string             { return "png" }
func (e *PNGEncoder) Extensions() []string       { return []string{"png"} }
func (e *PNGEncoder) Available() bool            { return true }
func (e *PNGEncoder) Capabilities() Capabilities { return Capabilities{} }
func (e *PNGEncoder) DefaultParams() Params      { return Params{} }

func (e *PNGEncoder) Encode(w io.Writer, img image.Image, _ Params) error {
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// GIFEncoder quantizes to a 256-color palette.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() string             { return "gif" }
func (e *GIFEncoder) Extensions() []string       { return []string{"gif"} }
func (e *GIFEncoder) Available() bool            { return true }
func (e *GIFEncoder) Capabilities() Capabilities { return Capabilities{} }
func (e *GIFEncoder) DefaultParams() Params      { return Params{} }

func (e *GIFEncoder) Encode(w io.Writer, img image.Image, _ Params) error {
	return gif.Encode(w, img, &gif.Options{NumColors: 256})
}

// TIFFEncoder writes Deflate-compressed TIFF with a horizontal predictor.
type TIFFEncoder struct{}

func (e *TIFFEncoder) Format() string             { return "tiff" }
func (e *TIFFEncoder) Extensions() []string       { return []string{"tiff", "tif"} }
func (e *TIFFEncoder) Available() bool            { return true }
func (e *TIFFEncoder) Capabilities() Capabilities { return Capabilities{} }
func (e *TIFFEncoder) DefaultParams() Params      { return Params{} }

func (e *TIFFEncoder) Encode(w io.Writer, img image.Image, _ Params) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

type BMPEncoder struct{}

func (e *BMPEncoder) Format() string             { return "bmp" }
func (e *BMPEncoder) Extensions() []string       { return []string{"bmp"} }
func (e *BMPEncoder) Available() bool            { return true }
func (e *BMPEncoder) Capabilities() Capabilities { return Capabilities{} }
func (e *BMPEncoder) DefaultParams() Params      { return Params{} }

func (e *BMPEncoder) Encode(w io.Writer, img image.Image, _ Params) error {
	return bmp.Encode(w, img)
}
