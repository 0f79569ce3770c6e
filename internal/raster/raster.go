// Package raster describes in-memory images and duplicates them without
// sharing pixel storage.
package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PixelFormat names the channel layout of an image's backing buffer.
type PixelFormat string

const (
	FormatRGBA    PixelFormat = "RGBA"
	FormatRGBA64  PixelFormat = "RGBA64"
	FormatNRGBA   PixelFormat = "NRGBA"
	FormatNRGBA64 PixelFormat = "NRGBA64"
	FormatGray    PixelFormat = "Gray"
	FormatGray16  PixelFormat = "Gray16"
	FormatAlpha   PixelFormat = "Alpha"
	FormatAlpha16 PixelFormat = "Alpha16"
	FormatCMYK    PixelFormat = "CMYK"
	FormatYCbCr   PixelFormat = "YCbCr"
	FormatNYCbCrA PixelFormat = "NYCbCrA"
	FormatPalette PixelFormat = "Paletted"
	FormatUnknown PixelFormat = "unknown"
)

// FormatOf returns the pixel format of img. YCbCr variants carry their
// subsample ratio, e.g. "YCbCr 4:2:0".
func FormatOf(img image.Image) PixelFormat {
	switch m := img.(type) {
	case *image.RGBA:
		return FormatRGBA
	case *image.RGBA64:
		return FormatRGBA64
	case *image.NRGBA:
		return FormatNRGBA
	case *image.NRGBA64:
		return FormatNRGBA64
	case *image.Gray:
		return FormatGray
	case *image.Gray16:
		return FormatGray16
	case *image.Alpha:
		return FormatAlpha
	case *image.Alpha16:
		return FormatAlpha16
	case *image.CMYK:
		return FormatCMYK
	case *image.NYCbCrA:
		return FormatNYCbCrA + PixelFormat(" "+ratioName(m.SubsampleRatio))
	case *image.YCbCr:
		return FormatYCbCr + PixelFormat(" "+ratioName(m.SubsampleRatio))
	case *image.Paletted:
		return FormatPalette
	}
	return FormatUnknown
}

func ratioName(r image.YCbCrSubsampleRatio) string {
	switch r {
	case image.YCbCrSubsampleRatio444:
		return "4:4:4"
	case image.YCbCrSubsampleRatio422:
		return "4:2:2"
	case image.YCbCrSubsampleRatio420:
		return "4:2:0"
	case image.YCbCrSubsampleRatio440:
		return "4:4:0"
	case image.YCbCrSubsampleRatio411:
		return "4:1:1"
	case image.YCbCrSubsampleRatio410:
		return "4:1:0"
	}
	return "?"
}

// HasAlpha reports whether any pixel of img is not fully opaque.
func HasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	case *image.NRGBA:
		return !m.Opaque()
	case *image.RGBA:
		return !m.Opaque()
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// Copy returns a deep copy of img with the same dimensions and pixel format.
// The copy is rebased to the origin and never shares storage with img, so a
// sub-image view is materialized as a standalone buffer of its own size.
// YCbCr views keep their offset within a chroma cell, so their copy may start
// at a point such as (1,1) instead of (0,0).
// Types outside the standard image package are cloned to NRGBA.
func Copy(img image.Image) image.Image {
	b := img.Bounds()
	r := image.Rect(0, 0, b.Dx(), b.Dy())

	switch m := img.(type) {
	case *image.RGBA:
		dst := image.NewRGBA(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx()*4, b.Dy())
		return dst
	case *image.RGBA64:
		dst := image.NewRGBA64(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx()*8, b.Dy())
		return dst
	case *image.NRGBA:
		dst := image.NewNRGBA(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx()*4, b.Dy())
		return dst
	case *image.NRGBA64:
		dst := image.NewNRGBA64(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx()*8, b.Dy())
		return dst
	case *image.Gray:
		dst := image.NewGray(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx(), b.Dy())
		return dst
	case *image.Gray16:
		dst := image.NewGray16(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx()*2, b.Dy())
		return dst
	case *image.Alpha:
		dst := image.NewAlpha(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx(), b.Dy())
		return dst
	case *image.Alpha16:
		dst := image.NewAlpha16(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx()*2, b.Dy())
		return dst
	case *image.CMYK:
		dst := image.NewCMYK(r)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx()*4, b.Dy())
		return dst
	case *image.Paletted:
		pal := make(color.Palette, len(m.Palette))
		copy(pal, m.Palette)
		dst := image.NewPaletted(r, pal)
		copyRows(dst.Pix, dst.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, b.Dx(), b.Dy())
		return dst
	case *image.NYCbCrA:
		dst := image.NewNYCbCrA(chromaAligned(b, m.SubsampleRatio), m.SubsampleRatio)
		copyYCbCr(&dst.YCbCr, &m.YCbCr, b)
		copyRows(dst.A, dst.AStride, m.A[m.AOffset(b.Min.X, b.Min.Y):], m.AStride, b.Dx(), b.Dy())
		return dst
	case *image.YCbCr:
		dst := image.NewYCbCr(chromaAligned(b, m.SubsampleRatio), m.SubsampleRatio)
		copyYCbCr(dst, m, b)
		return dst
	}
	return imaging.Clone(img)
}

func copyRows(dst []byte, dstStride int, src []byte, srcStride, rowLen, rows int) {
	for y := 0; y < rows; y++ {
		copy(dst[y*dstStride:y*dstStride+rowLen], src[y*srcStride:y*srcStride+rowLen])
	}
}

// chromaCell returns the width and height in pixels covered by one chroma
// sample.
func chromaCell(ratio image.YCbCrSubsampleRatio) (int, int) {
	switch ratio {
	case image.YCbCrSubsampleRatio422:
		return 2, 1
	case image.YCbCrSubsampleRatio420:
		return 2, 2
	case image.YCbCrSubsampleRatio440:
		return 1, 2
	case image.YCbCrSubsampleRatio411:
		return 4, 1
	case image.YCbCrSubsampleRatio410:
		return 4, 2
	}
	return 1, 1
}

// chromaAligned rebases b as close to the origin as the chroma grid allows.
// The returned origin keeps b's position within its chroma cell, so each
// destination chroma sample covers the same pixels as in the source.
func chromaAligned(b image.Rectangle, ratio image.YCbCrSubsampleRatio) image.Rectangle {
	cw, ch := chromaCell(ratio)
	o := image.Pt(mod(b.Min.X, cw), mod(b.Min.Y, ch))
	return image.Rectangle{Min: o, Max: o.Add(b.Size())}
}

func mod(a, n int) int {
	return (a%n + n) % n
}

// copyYCbCr copies the region b of src into dst, whose bounds have b's size
// and chroma phase.
func copyYCbCr(dst, src *image.YCbCr, b image.Rectangle) {
	off := b.Min.Sub(dst.Rect.Min)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := y - off.Y
		yi := dst.YOffset(dst.Rect.Min.X, dy)
		copy(dst.Y[yi:yi+b.Dx()], src.Y[src.YOffset(b.Min.X, y):])
		for x := b.Min.X; x < b.Max.X; x++ {
			di := dst.COffset(x-off.X, dy)
			si := src.COffset(x, y)
			dst.Cb[di] = src.Cb[si]
			dst.Cr[di] = src.Cr[si]
		}
	}
}
