// Package resource turns the supported input representations into a
// decoded image.Image.
package resource

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Resource is one of Path, File, URL or Image. The set is closed.
type Resource interface {
	resource()
	String() string
}

// Path is a local file path.
type Path string

// File is an open file handle; decoding starts at its current offset and
// the handle is left open.
type File struct{ *os.File }

// URL is a file, http or https URL.
type URL struct{ *url.URL }

// Image is an already decoded image, returned as is.
type Image struct{ image.Image }

func (Path) resource()  {}
func (File) resource()  {}
func (URL) resource()   {}
func (Image) resource() {}

func (p Path) String() string { return string(p) }

func (f File) String() string {
	if f.File == nil {
		return "<nil file>"
	}
	return f.Name()
}

func (u URL) String() string {
	if u.URL == nil {
		return "<nil url>"
	}
	return u.URL.String()
}

func (i Image) String() string {
	if i.Image == nil {
		return "<nil image>"
	}
	b := i.Bounds()
	return fmt.Sprintf("image %dx%d", b.Dx(), b.Dy())
}

// Parse classifies a command-line style argument: "-" is stdin, strings
// with a file/http/https scheme are URLs, everything else is a path.
func Parse(s string) Resource {
	if s == "-" {
		return File{os.Stdin}
	}
	if u, err := url.Parse(s); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "file", "http", "https":
			return URL{u}
		}
	}
	return Path(s)
}

// DecodeError reports a resource that could not be opened or decoded.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Loader coerces resources into images. The zero value is ready to use.
type Loader struct {
	Client *http.Client // nil uses a client with a 30s timeout
	Log    zerolog.Logger
}

var defaultClient = &http.Client{Timeout: 30 * time.Second}

// NewLoader returns a Loader with a 30s HTTP timeout.
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{
		Client: defaultClient,
		Log:    log,
	}
}

func (l *Loader) client() *http.Client {
	if l.Client == nil {
		return defaultClient
	}
	return l.Client
}

var defaultLoader = NewLoader(zerolog.Nop())

// Coerce decodes r with the default loader.
func Coerce(r Resource) (image.Image, error) {
	return defaultLoader.Coerce(r)
}

// Coerce maps r to a decoded image. Decoding sniffs the content, never the
// file extension. Every failure is a *DecodeError.
func (l *Loader) Coerce(r Resource) (image.Image, error) {
	switch v := r.(type) {
	case Image:
		if v.Image == nil {
			return nil, &DecodeError{Resource: v.String(), Err: errors.New("nil image")}
		}
		return v.Image, nil
	case Path:
		return l.decodePath(string(v))
	case File:
		if v.File == nil {
			return nil, &DecodeError{Resource: v.String(), Err: os.ErrInvalid}
		}
		return l.decode(v.String(), v.File)
	case URL:
		return l.decodeURL(v)
	case nil:
		return nil, &DecodeError{Resource: "<nil>", Err: errors.New("nil resource")}
	}
	return nil, &DecodeError{Resource: r.String(), Err: errors.Errorf("unsupported resource %T", r)}
}

func (l *Loader) decodePath(path string) (image.Image, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &DecodeError{Resource: path, Err: err}
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, &DecodeError{Resource: path, Err: err}
	}
	defer f.Close()

	return l.decode(abs, f)
}

func (l *Loader) decodeURL(u URL) (image.Image, error) {
	if u.URL == nil {
		return nil, &DecodeError{Resource: u.String(), Err: errors.New("nil url")}
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		if u.Host != "" && u.Host != "localhost" {
			return nil, &DecodeError{Resource: u.String(), Err: errors.Errorf("remote file host %q", u.Host)}
		}
		return l.decodePath(filepath.FromSlash(u.Path))
	case "http", "https":
	default:
		return nil, &DecodeError{Resource: u.String(), Err: errors.Errorf("unsupported scheme %q", u.Scheme)}
	}

	l.Log.Debug().Str("url", u.String()).Msg("fetching")
	resp, err := l.client().Get(u.String())
	if err != nil {
		return nil, &DecodeError{Resource: u.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DecodeError{Resource: u.String(), Err: errors.Errorf("unexpected status %s", resp.Status)}
	}
	return l.decode(u.String(), resp.Body)
}

func (l *Loader) decode(name string, r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Resource: name, Err: errors.Wrap(err, "image.Decode")}
	}

	b := img.Bounds()
	l.Log.Debug().
		Str("resource", name).
		Str("format", format).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("decoded")
	return img, nil
}
