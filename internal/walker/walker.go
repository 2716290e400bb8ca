// Package walker enumerates a directory tree bottom-up: every directory is
// yielded only after all of its descendants have been yielded.
package walker

import (
	"iter"
	"path/filepath"

	"github.com/jmcdonald/lowercase/internal/adapters/osfs"
	"github.com/jmcdonald/lowercase/internal/ports"
)

// Listing is the snapshot of one directory taken when it was read.
type Listing struct {
	Dir   string   // Path of the directory, joined from the walk root
	Files []string // Names of non-directory entries, symlinks included
	Dirs  []string // Names of subdirectories
}

// Walker reads directories through a ports.FileSystem.
type Walker struct {
	fs ports.FileSystem

	// OnError, if set, is called for each directory that could not be read.
	// The walk continues without that subtree.
	OnError func(dir string, err error)
}

// New creates a walker over the given filesystem.
func New(fs ports.FileSystem) *Walker {
	return &Walker{fs: fs}
}

// NewDefault creates a walker over the real filesystem.
func NewDefault() *Walker {
	return New(osfs.New())
}

// BottomUp returns a lazy post-order sequence of listings rooted at root.
// A root that cannot be read produces no listings.
func (w *Walker) BottomUp(root string) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		w.walk(root, yield)
	}
}

// walk returns false once the consumer has stopped iterating.
func (w *Walker) walk(dir string, yield func(Listing) bool) bool {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		if w.OnError != nil {
			w.OnError(dir, err)
		}
		return true
	}

	l := Listing{Dir: dir}
	for _, entry := range entries {
		// Symlinked directories report IsDir() == false and are never descended.
		if entry.IsDir() {
			l.Dirs = append(l.Dirs, entry.Name())
		} else {
			l.Files = append(l.Files, entry.Name())
		}
	}

	for _, sub := range l.Dirs {
		if !w.walk(filepath.Join(dir, sub), yield) {
			return false
		}
	}

	return yield(l)
}
