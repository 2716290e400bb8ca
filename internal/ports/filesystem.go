// Package ports defines interfaces (contracts) for external dependencies.
// These enable dependency injection and testability via mock implementations.
package ports

import "os"

// FileSystem abstracts the filesystem operations the rename pass needs.
// Production code uses OSFileSystem adapter; tests use MockFileSystem.
type FileSystem interface {
	// ReadDir reads the named directory and returns directory entries.
	ReadDir(name string) ([]os.DirEntry, error)

	// Lstat returns file info for the named entry without following symlinks.
	Lstat(name string) (os.FileInfo, error)

	// Rename renames (moves) oldpath to newpath.
	Rename(oldpath, newpath string) error
}
