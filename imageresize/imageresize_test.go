package imageresize

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	fn := filepath.Join(dir, "poster.png")
	f, err := os.Create(fn)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return fn
}

func TestInfo(t *testing.T) {
	cache := t.TempDir()
	src := writePNG(t, t.TempDir(), 400, 200)
	r := New(Options{Cachedir: cache})

	w, h, err := r.Info(src)
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)

	infos, err := filepath.Glob(filepath.Join(cache, "*.info"))
	require.NoError(t, err)
	assert.Len(t, infos, 1)

	// second call is served from the cache file
	w, h, err = r.Info(src)
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)
}

func TestInfoMissingFile(t *testing.T) {
	r := New(Options{})
	_, _, err := r.Info(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	src := writePNG(t, t.TempDir(), 400, 200)
	r := New(Options{Cachedir: t.TempDir()})

	fn, err := r.Resize(src, 100, 0)
	require.NoError(t, err)
	assert.NotEqual(t, src, fn)
	assert.Equal(t, ".jpg", filepath.Ext(fn))

	img, err := imaging.Open(fn)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	w, h, err := r.Dimensions(src, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	again, err := r.Resize(src, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, fn, again)
}

func TestResizeNotNeeded(t *testing.T) {
	src := writePNG(t, t.TempDir(), 400, 200)

	r := New(Options{Cachedir: t.TempDir()})
	fn, err := r.Resize(src, 1200, 90)
	require.NoError(t, err)
	assert.Equal(t, src, fn)

	w, h, err := r.Dimensions(src, 1200)
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)

	// no cache directory, no resizing
	r = New(Options{})
	fn, err = r.Resize(src, 100, 90)
	require.NoError(t, err)
	assert.Equal(t, src, fn)
}
