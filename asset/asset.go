// Package asset finds game assets on disk, in embedded boxes and in kar archives.
package asset

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/packr"
	"github.com/libreskies/libreskies/utility/kar"
	"golang.org/x/exp/mmap"
)

// ErrNotFound is returned when no source holds the asset
var ErrNotFound = errors.New("asset not found")

// Source is a place assets can be read from.
// Names always use forward slashes.
type Source interface {
	Has(name string) bool
	Open(name string) (io.ReadCloser, error)
}

func clean(name string) string {
	return strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(name)), "/")
}

// DirSource reads assets relative to a directory
type DirSource string

// Has implements Source
func (d DirSource) Has(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && !info.IsDir()
}

// Open implements Source
func (d DirSource) Open(name string) (io.ReadCloser, error) {
	if !d.Has(name) {
		return nil, ErrNotFound
	}
	return os.Open(d.path(name))
}

func (d DirSource) path(name string) string {
	return filepath.Join(string(d), filepath.FromSlash(clean(name)))
}

// BoxSource reads assets packed into the binary with packr
type BoxSource struct {
	box packr.Box
}

// NewBoxSource wraps a box. The path is relative to the calling
// source file, as with packr.NewBox.
func NewBoxSource(box packr.Box) *BoxSource {
	return &BoxSource{box: box}
}

// Has implements Source
func (b *BoxSource) Has(name string) bool {
	return b.box.Has(clean(name))
}

// Open implements Source
func (b *BoxSource) Open(name string) (io.ReadCloser, error) {
	name = clean(name)
	if !b.box.Has(name) {
		return nil, ErrNotFound
	}
	data, err := b.box.Find(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// ArchiveSource reads assets from a memory mapped kar archive
type ArchiveSource struct {
	mapped  *mmap.ReaderAt
	archive *kar.Archive
}

// OpenArchive maps the archive at path into memory
func OpenArchive(path string) (*ArchiveSource, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	archive, err := kar.Open(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return &ArchiveSource{mapped: r, archive: archive}, nil
}

// Has implements Source
func (a *ArchiveSource) Has(name string) bool {
	return a.archive.Has(clean(name))
}

// Open implements Source
func (a *ArchiveSource) Open(name string) (io.ReadCloser, error) {
	r, err := a.archive.Open(clean(name))
	if err == kar.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return io.NopCloser(r), nil
}

// Close unmaps the archive, readers opened from it become invalid
func (a *ArchiveSource) Close() error {
	return a.mapped.Close()
}
