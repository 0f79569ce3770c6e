//go:build ignore

// gen_fixtures creates small test images for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/AnyUserName/rasterio/internal/saver"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(dir, 0o755)

	fixtures := []struct {
		name string
		img  image.Image
		opts saver.Options
	}{
		{"gradient.jpg", gradient(400, 225), saver.DefaultOptions().WithQuality(0.9)},
		{"gradient-progressive.jpg", gradient(400, 225), saver.DefaultOptions().WithProgressive(true)},
		{"gradient.png", gradient(200, 150), saver.DefaultOptions()},
		{"alpha.png", alphaGradient(100, 100), saver.DefaultOptions()},
		{"gray.tif", grayRamp(64, 64), saver.DefaultOptions()},
		{"gray.bmp", grayRamp(64, 64), saver.DefaultOptions()},
	}

	for _, f := range fixtures {
		if _, err := saver.Save(f.img, filepath.Join(dir, f.name), f.opts); err != nil {
			fmt.Fprintf(os.Stderr, "[gen_fixtures] %s: %v\n", f.name, err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(fixtures), dir)
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func grayRamp(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) * 255 / (w + h))})
		}
	}
	return img
}
