package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os/exec"
	"sync"
)

// JPEGEncoder encodes images to JPEG using Go's standard library.
// Progressive output is produced by piping the baseline stream through
// jpegtran, so that axis is only reported when jpegtran is installed.
// Install: brew install jpeg / apt install libjpeg-turbo-progs
type JPEGEncoder struct {
	once         sync.Once
	progressive  bool
	jpegtranPath string
}

func (e *JPEGEncoder) Format() string       { return "jpeg" }
func (e *JPEGEncoder) Extensions() []string { return []string{"jpg", "jpeg", "jpe"} }
func (e *JPEGEncoder) Available() bool      { return true }

func (e *JPEGEncoder) Capabilities() Capabilities {
	e.once.Do(func() {
		path, err := exec.LookPath("jpegtran")
		if err == nil {
			e.progressive = true
			e.jpegtranPath = path
		}
	})
	return Capabilities{Compression: true, Progressive: e.progressive}
}

func (e *JPEGEncoder) DefaultParams() Params {
	return Params{
		CompressionMode:    ModeCopyFromMetadata,
		CompressionQuality: float64(jpeg.DefaultQuality) / 100,
		ProgressiveMode:    ModeCopyFromMetadata,
	}
}

func (e *JPEGEncoder) Encode(w io.Writer, img image.Image, p Params) error {
	opts := &jpeg.Options{Quality: qualityFor(p, jpeg.DefaultQuality, 1)}

	if p.ProgressiveMode != ModeDefault || !e.Capabilities().Progressive {
		return jpeg.Encode(w, img, opts)
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024)
	if err := jpeg.Encode(&buf, img, opts); err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.Command(e.jpegtranPath, "-progressive", "-copy", "all", "-optimize")
	cmd.Stdin = &buf
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("jpegtran: %w: %s", err, stderr.String())
	}
	return nil
}
