// Package mocks provides mock implementations for testing.
package mocks

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmcdonald/lowercase/internal/ports"
)

// RenameCall records one call to Rename.
type RenameCall struct {
	Old string
	New string
}

// MockFileSystem implements ports.FileSystem as an in-memory tree.
// Paths are compared after filepath.Clean.
type MockFileSystem struct {
	// Entries maps every known path to whether it is a directory.
	Entries map[string]bool
	// ReadDirErrors maps directory paths to errors returned by ReadDir.
	ReadDirErrors map[string]error
	// RenameErrors maps source paths to errors returned by Rename.
	RenameErrors map[string]error

	// Call tracking
	ReadDirCalls []string
	LstatCalls   []string
	RenameCalls  []RenameCall
}

// NewMockFileSystem creates a new mock filesystem with an empty root "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Entries:       map[string]bool{"/": true},
		ReadDirErrors: make(map[string]error),
		RenameErrors:  make(map[string]error),
	}
}

// AddDir adds a directory and any missing parents.
func (m *MockFileSystem) AddDir(path string) {
	path = filepath.Clean(path)
	for p := path; ; p = filepath.Dir(p) {
		m.Entries[p] = true
		if p == filepath.Dir(p) {
			return
		}
	}
}

// AddFile adds a file and any missing parent directories.
func (m *MockFileSystem) AddFile(path string) {
	path = filepath.Clean(path)
	m.AddDir(filepath.Dir(path))
	m.Entries[path] = false
}

// Exists reports whether path is present in the tree.
func (m *MockFileSystem) Exists(path string) bool {
	_, ok := m.Entries[filepath.Clean(path)]
	return ok
}

// Paths returns every path in the tree, sorted.
func (m *MockFileSystem) Paths() []string {
	paths := make([]string, 0, len(m.Entries))
	for p := range m.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ReadDir returns the immediate children of name, sorted by name.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	name = filepath.Clean(name)
	m.ReadDirCalls = append(m.ReadDirCalls, name)

	if err, ok := m.ReadDirErrors[name]; ok {
		return nil, err
	}
	isDir, ok := m.Entries[name]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	if !isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	var entries []os.DirEntry
	for p, dir := range m.Entries {
		if p != name && filepath.Dir(p) == name {
			entries = append(entries, &mockDirEntry{name: filepath.Base(p), isDir: dir})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Lstat returns file info for the named entry.
func (m *MockFileSystem) Lstat(name string) (os.FileInfo, error) {
	name = filepath.Clean(name)
	m.LstatCalls = append(m.LstatCalls, name)

	isDir, ok := m.Entries[name]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return &mockFileInfo{name: filepath.Base(name), isDir: isDir}, nil
}

// Rename moves oldpath, and everything below it, to newpath.
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	oldpath = filepath.Clean(oldpath)
	newpath = filepath.Clean(newpath)
	m.RenameCalls = append(m.RenameCalls, RenameCall{Old: oldpath, New: newpath})

	if err, ok := m.RenameErrors[oldpath]; ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	if _, ok := m.Entries[oldpath]; !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	if !m.Exists(filepath.Dir(newpath)) {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}

	moved := make(map[string]bool)
	prefix := oldpath + string(filepath.Separator)
	for p, dir := range m.Entries {
		switch {
		case p == oldpath:
			moved[newpath] = dir
			delete(m.Entries, p)
		case strings.HasPrefix(p, prefix):
			moved[newpath+p[len(oldpath):]] = dir
			delete(m.Entries, p)
		}
	}
	for p, dir := range moved {
		m.Entries[p] = dir
	}
	return nil
}

// mockDirEntry implements os.DirEntry for testing.
type mockDirEntry struct {
	name  string
	isDir bool
}

func (d *mockDirEntry) Name() string { return d.name }
func (d *mockDirEntry) IsDir() bool  { return d.isDir }
func (d *mockDirEntry) Type() fs.FileMode {
	if d.isDir {
		return fs.ModeDir
	}
	return 0
}
func (d *mockDirEntry) Info() (fs.FileInfo, error) {
	return &mockFileInfo{name: d.name, isDir: d.isDir}, nil
}

// mockFileInfo implements os.FileInfo for testing.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (fi *mockFileInfo) Name() string { return fi.name }
func (fi *mockFileInfo) Size() int64  { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
