package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/rasterio/internal/encoder"
)

func TestGet_Builtin(t *testing.T) {
	web := Get("web")
	assert.Equal(t, "web", web.Name)
	assert.Equal(t, 0.82, web.Quality)
	require.NotNil(t, web.Progressive)
	assert.True(t, *web.Progressive)

	o := web.Options()
	assert.Equal(t, 0.82, o.QualityOrDefault())
	require.NotNil(t, o.Progressive)
	assert.True(t, *o.Progressive)
}

func TestGet_UnknownFallsBackToDefault(t *testing.T) {
	p := Get("does-not-exist")
	assert.Equal(t, "does-not-exist", p.Name)
	assert.Equal(t, 0.8, p.Quality)
	assert.Nil(t, p.Progressive)
	assert.Nil(t, p.Options().Progressive)
}

func TestBuiltin_IsACopy(t *testing.T) {
	s := Builtin()
	s["web"] = Preset{Name: "web", Quality: 0.1}
	assert.Equal(t, 0.82, Get("web").Quality)
	assert.Equal(t, []string{"archive", "default", "thumbnail", "web"}, Builtin().Names())
}

func writePresets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MergesOverBuiltins(t *testing.T) {
	path := writePresets(t, `
presets:
  web:
    quality: 0.9
  print:
    quality: 1.0
    progressive: false
`)
	set, err := Load(path)
	require.NoError(t, err)

	web := set.Get("web")
	assert.Equal(t, 0.9, web.Quality)
	require.NotNil(t, web.Progressive, "unset keys keep the built-in value")
	assert.True(t, *web.Progressive)

	pr := set.Get("print")
	assert.Equal(t, "print", pr.Name)
	assert.Equal(t, 1.0, pr.Quality)
	require.NotNil(t, pr.Progressive)
	assert.False(t, *pr.Progressive)

	assert.Equal(t, 0.95, set.Get("archive").Quality)
}

func TestLoad_MissingQualityKeepsBaseValue(t *testing.T) {
	path := writePresets(t, `
presets:
  web:
    progressive: false
  fast:
    progressive: true
`)
	set, err := Load(path)
	require.NoError(t, err)

	web := set.Get("web")
	assert.Equal(t, "web", web.Name)
	assert.Equal(t, 0.82, web.Quality)
	require.NotNil(t, web.Progressive)
	assert.False(t, *web.Progressive)

	fast := set.Get("fast")
	assert.Equal(t, "fast", fast.Name)
	assert.Equal(t, 0.8, fast.Quality)
	require.NotNil(t, fast.Progressive)
	assert.True(t, *fast.Progressive)

	// The built-in table is untouched.
	assert.True(t, *Get("web").Progressive)
}

func TestLoad_RejectsBadQuality(t *testing.T) {
	path := writePresets(t, "presets:\n  loud:\n    quality: 7\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, encoder.ErrQualityRange))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writePresets(t, "presets: [not, a, map]"))
	assert.Error(t, err)
}
