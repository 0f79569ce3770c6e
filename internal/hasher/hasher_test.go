package hasher

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestContentHash_ReaderMatchesBytes(t *testing.T) {
	data := bytes.Repeat([]byte("rasterio"), 1000)

	h1 := ContentHash(data, 16)
	h2, err := ContentHashReader(bytes.NewReader(data), 16)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("hash mismatch: %s vs %s", h1, h2)
	}
	if len(h1) != 16 {
		t.Errorf("length: got %d", len(h1))
	}
	if got := ContentHash(data, 8); got != h1[:8] {
		t.Errorf("truncated: got %s, want %s", got, h1[:8])
	}
}

func TestPixelHash_FormatIndependent(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 6, 4))
	nrgba := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			c := color.RGBA{R: uint8(x * 40), G: uint8(y * 60), B: 7, A: 255}
			rgba.SetRGBA(x, y, c)
			nrgba.Set(x, y, c)
		}
	}

	if PixelHash(rgba, 0) != PixelHash(nrgba, 0) {
		t.Error("opaque RGBA and NRGBA with the same colors should hash equal")
	}

	nrgba.Set(0, 0, color.RGBA{R: 1, A: 255})
	if PixelHash(rgba, 0) == PixelHash(nrgba, 0) {
		t.Error("changed pixel did not change hash")
	}
}

func TestPixelHash_IncludesDimensions(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 4, 2))
	b := image.NewGray(image.Rect(0, 0, 2, 4))
	if PixelHash(a, 0) == PixelHash(b, 0) {
		t.Error("4x2 and 2x4 black images should hash differently")
	}
}

func TestPixelHash_SubImageRelative(t *testing.T) {
	full := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range full.Pix {
		full.Pix[i] = uint8(i)
	}
	view := full.SubImage(image.Rect(2, 2, 6, 6))

	standalone := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			standalone.SetGray(x, y, full.GrayAt(x+2, y+2))
		}
	}
	if PixelHash(view, 0) != PixelHash(standalone, 0) {
		t.Error("sub-image should hash like an equal standalone image")
	}
}
