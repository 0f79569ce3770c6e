package encoder

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
)

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// WebPEncoder encodes images to WebP by shelling out to cwebp.
// This approach avoids CGO while still producing optimized WebP.
// Install: brew install webp / apt install webp
type WebPEncoder struct {
	once      sync.Once
	available bool
	cwebpPath string
}

func (e *WebPEncoder) Format() string             { return "webp" }
func (e *WebPEncoder) Extensions() []string       { return []string{"webp"} }
func (e *WebPEncoder) Capabilities() Capabilities { return Capabilities{Compression: true} }

func (e *WebPEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("cwebp")
		if err == nil {
			e.available = true
			e.cwebpPath = path
		}
	})
	return e.available
}

func (e *WebPEncoder) DefaultParams() Params {
	return Params{CompressionMode: ModeCopyFromMetadata, CompressionQuality: 0.75}
}

func (e *WebPEncoder) Encode(w io.Writer, img image.Image, p Params) error {
	if !e.Available() {
		return fmt.Errorf("cwebp not found in PATH; install with: brew install webp")
	}
	quality := qualityFor(p, 75, 0)

	return runExternal(w, img, "webp", func(src, dst string) *exec.Cmd {
		return exec.Command(e.cwebpPath,
			"-q", fmt.Sprintf("%d", quality),
			"-m", "6", // compression method (0=fast, 6=best)
			"-mt",     // multi-threaded
			"-quiet",
			src,
			"-o", dst,
		)
	})
}

// AVIFEncoder encodes images to AVIF by shelling out to avifenc.
// Install: brew install libavif / apt install libavif-bin
type AVIFEncoder struct {
	once        sync.Once
	available   bool
	avifencPath string
}

func (e *AVIFEncoder) Format() string             { return "avif" }
func (e *AVIFEncoder) Extensions() []string       { return []string{"avif"} }
func (e *AVIFEncoder) Capabilities() Capabilities { return Capabilities{Compression: true} }

func (e *AVIFEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("avifenc")
		if err == nil {
			e.available = true
			e.avifencPath = path
		}
	})
	return e.available
}

func (e *AVIFEncoder) DefaultParams() Params {
	return Params{CompressionMode: ModeCopyFromMetadata, CompressionQuality: 0.6}
}

func (e *AVIFEncoder) Encode(w io.Writer, img image.Image, p Params) error {
	if !e.Available() {
		return fmt.Errorf("avifenc not found in PATH; install with: brew install libavif")
	}
	quality := qualityFor(p, 60, 0)

	// avifenc uses a different quality scale: lower = better, 0-63.
	avifQ := 63 - (quality * 63 / 100)
	speed := 6 // 0=slowest, 10=fastest

	return runExternal(w, img, "avif", func(src, dst string) *exec.Cmd {
		return exec.Command(e.avifencPath,
			"--min", fmt.Sprintf("%d", avifQ),
			"--max", fmt.Sprintf("%d", avifQ),
			"--speed", fmt.Sprintf("%d", speed),
			"-j", "all",
			src,
			dst,
		)
	})
}

// runExternal stages img as a temporary PNG, runs the command built by
// build(src, dst) and streams the produced file into w.
func runExternal(w io.Writer, img image.Image, ext string, build func(src, dst string) *exec.Cmd) error {
	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("rasterio_%s_src_%d_*.png", ext, id))
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	dstFile, err := os.CreateTemp("", fmt.Sprintf("rasterio_%s_dst_%d_*.%s", ext, id, ext))
	if err != nil {
		srcFile.Close()
		return fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	if err := png.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return fmt.Errorf("encode temp png: %w", err)
	}
	if err := srcFile.Close(); err != nil {
		return fmt.Errorf("close temp png: %w", err)
	}

	cmd := build(srcPath, dstPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", cmd.Path, err, string(out))
	}

	out, err := os.Open(dstPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(w, out)
	return err
}
