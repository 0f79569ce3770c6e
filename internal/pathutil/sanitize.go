package pathutil

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// InvalidSchemeError is returned for paths that do not denote a local file.
type InvalidSchemeError struct {
	Path   string
	Scheme string
}

func (e *InvalidSchemeError) Error() string {
	return fmt.Sprintf("path must point to a local file: %q has scheme %q", e.Path, e.Scheme)
}

// Sanitize accepts a plain path or a file URL on the local host and returns
// its canonical file URL (file:///abs/path). Any other scheme, or a file URL
// naming a remote host, is rejected with *InvalidSchemeError.
func Sanitize(path string) (*url.URL, error) {
	local := path

	if u, err := url.Parse(path); err == nil && u.Scheme != "" && !isDriveLetter(u.Scheme) {
		if !strings.EqualFold(u.Scheme, "file") {
			return nil, &InvalidSchemeError{Path: path, Scheme: u.Scheme}
		}
		if u.Host != "" && u.Host != "localhost" {
			return nil, &InvalidSchemeError{Path: path, Scheme: "file://" + u.Host}
		}
		local = filepath.FromSlash(u.Path)
		if runtime.GOOS == "windows" {
			local = strings.TrimPrefix(local, `\`)
		}
	}
	if local == "" {
		return nil, fmt.Errorf("empty path")
	}

	abs, err := filepath.Abs(local)
	if err != nil {
		return nil, err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}, nil
}

// LocalPath converts a file URL produced by Sanitize back to an OS path.
func LocalPath(u *url.URL) string {
	p := filepath.FromSlash(u.Path)
	if runtime.GOOS == "windows" {
		p = strings.TrimPrefix(p, `\`)
	}
	return p
}

// A single-letter scheme on Windows is a drive letter ("C:\img.png").
func isDriveLetter(scheme string) bool {
	return runtime.GOOS == "windows" && len(scheme) == 1
}
