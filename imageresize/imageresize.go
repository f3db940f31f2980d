// Package imageresize creates og:image sized derivatives of posters
// and caches them on disk.
package imageresize

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/erikbos/showgraph/idhash"
)

const DefaultQuality = 85

type Options struct {
	// Cachedir holds derivatives and dimension info. Resizing is
	// disabled when empty.
	Cachedir string
}

type Resizer struct {
	cachedir           string
	tmpExt             string
	resizeMutexMap     map[string]*sync.Mutex
	resizeMutexMapLock sync.Mutex
}

func New(config Options) *Resizer {
	return &Resizer{
		cachedir:       config.Cachedir,
		resizeMutexMap: make(map[string]*sync.Mutex),
		tmpExt:         fmt.Sprintf(".%d", os.Getpid()),
	}
}

// cacheName returns a name that changes when the file changes.
func cacheName(file string) (string, error) {
	fi, err := os.Stat(file)
	if err != nil {
		return "", err
	}
	return idhash.Hash(fmt.Sprintf("%s:%d:%d", file, fi.Size(), fi.ModTime().UnixNano())), nil
}

func (r *Resizer) lock(name string) func() {
	r.resizeMutexMapLock.Lock()
	m, ok := r.resizeMutexMap[name]
	if !ok {
		m = &sync.Mutex{}
		r.resizeMutexMap[name] = m
	}
	r.resizeMutexMapLock.Unlock()
	m.Lock()
	return m.Unlock
}

// Info returns the width and height of an image, after applying
// EXIF orientation.
func (r *Resizer) Info(file string) (w, h int, err error) {
	cn, err := cacheName(file)
	if err != nil {
		return 0, 0, err
	}
	if w, h, ok := r.cacheReadInfo(cn); ok {
		return w, h, nil
	}
	img, err := imaging.Open(file, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	r.cacheWriteInfo(cn, b.Dx(), b.Dy())
	return b.Dx(), b.Dy(), nil
}

// get info about the original file (width x height) from the cache.
func (r *Resizer) cacheReadInfo(cn string) (w, h int, ok bool) {
	if r.cachedir == "" {
		return
	}
	fh, err := os.Open(filepath.Join(r.cachedir, cn+".info"))
	if err != nil {
		return
	}
	defer fh.Close()
	if _, err := fmt.Fscanf(fh, "%dx%d\n", &w, &h); err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// write info about the original file (width x height) to the cache.
func (r *Resizer) cacheWriteInfo(cn string, w, h int) {
	if r.cachedir == "" {
		return
	}
	fn := filepath.Join(r.cachedir, cn+".info")
	tmp := fn + r.tmpExt
	if err := os.WriteFile(tmp, fmt.Appendf(nil, "%dx%d\n", w, h), 0o644); err != nil {
		os.Remove(tmp)
		return
	}
	if err := os.Rename(tmp, fn); err != nil {
		os.Remove(tmp)
	}
}

// Resize returns the path of a JPEG of at most width pixels wide. The
// original file is returned when no resizing is needed or possible.
func (r *Resizer) Resize(file string, width, quality int) (string, error) {
	if r.cachedir == "" || width <= 0 {
		return file, nil
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	w, _, err := r.Info(file)
	if err != nil {
		return "", err
	}
	if w <= width {
		return file, nil
	}

	cn, err := cacheName(file)
	if err != nil {
		return "", err
	}
	fn := filepath.Join(r.cachedir, fmt.Sprintf("%s-%dq%d.jpg", cn, width, quality))

	unlock := r.lock(fn)
	defer unlock()

	if _, err := os.Stat(fn); err == nil {
		return fn, nil
	}

	img, err := imaging.Open(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	img = imaging.Resize(img, width, 0, imaging.Lanczos)

	tmp := fn[:len(fn)-len(".jpg")] + r.tmpExt + ".jpg"
	if err := imaging.Save(img, tmp, imaging.JPEGQuality(quality)); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("resize %s: %w", file, err)
	}
	if err := os.Rename(tmp, fn); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return fn, nil
}

// Dimensions returns the size Resize(file, width) will produce.
func (r *Resizer) Dimensions(file string, width int) (w, h int, err error) {
	w, h, err = r.Info(file)
	if err != nil {
		return 0, 0, err
	}
	if r.cachedir == "" || width <= 0 || w <= width {
		return w, h, nil
	}
	// imaging.Resize rounds the same way.
	h = int(float64(h)*float64(width)/float64(w) + 0.5)
	if h < 1 {
		h = 1
	}
	return width, h, nil
}
