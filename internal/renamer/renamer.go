// Package renamer decides and applies the lowercase rename of each entry in
// a directory tree.
package renamer

import (
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmcdonald/lowercase/internal/adapters/osfs"
	"github.com/jmcdonald/lowercase/internal/config"
	"github.com/jmcdonald/lowercase/internal/ports"
	"github.com/jmcdonald/lowercase/internal/walker"
)

// Lower maps name to lowercase using Unicode default case mapping,
// independent of the process locale.
func Lower(name string) string {
	return cases.Lower(language.Und).String(name)
}

// Service provides rename operations with injected dependencies.
type Service struct {
	fs     ports.FileSystem
	walker *walker.Walker
}

// NewService creates a new rename service over the given filesystem.
func NewService(fs ports.FileSystem) *Service {
	return &Service{
		fs:     fs,
		walker: walker.New(fs),
	}
}

// NewDefaultService creates a rename service over the real filesystem.
func NewDefaultService() *Service {
	return NewService(osfs.New())
}

// OnListError sets the hook called for directories the walk cannot read.
func (s *Service) OnListError(fn func(dir string, err error)) {
	s.walker.OnError = fn
}

// Decide computes the lowercase name for dir/name and, unless cfg.DryRun is
// set, renames the entry. It performs at most one Rename call.
func (s *Service) Decide(cfg config.Config, dir, name string) Outcome {
	o := Outcome{Dir: dir, OldName: name, NewName: Lower(name)}

	if o.NewName == o.OldName {
		o.Kind = SkippedLowercase
		return o
	}

	if s.occupied(dir, o.OldName, o.NewName) {
		o.Kind = SkippedCollision
		return o
	}

	if cfg.DryRun {
		o.Kind = Simulated
		return o
	}

	if err := s.fs.Rename(o.OldPath(), o.NewPath()); err != nil {
		o.Kind = Failed
		o.Err = err
		return o
	}

	o.Kind = Renamed
	return o
}

// occupied reports whether newName in dir is an entry other than oldName.
// If both names resolve to the same file, newName is occupied only when dir
// lists it separately (hard-linked case twins). A case-insensitive
// filesystem lists the entry once, under oldName.
func (s *Service) occupied(dir, oldName, newName string) bool {
	target, err := s.fs.Lstat(filepath.Join(dir, newName))
	if err != nil {
		return false
	}
	current, err := s.fs.Lstat(filepath.Join(dir, oldName))
	if err != nil {
		// Source is gone; let Rename report it.
		return false
	}
	if !os.SameFile(current, target) {
		return true
	}
	return s.listed(dir, newName)
}

// listed reports whether dir contains an entry named exactly name.
// An unreadable directory counts as containing it.
func (s *Service) listed(dir, name string) bool {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return true
	}
	for _, e := range entries {
		if e.Name() == name {
			return true
		}
	}
	return false
}

// Run renames every entry below cfg.TargetDir, deepest directories first.
// Within a directory, files are handled before subdirectories. emit receives
// every outcome except SkippedLowercase, in processing order.
func (s *Service) Run(cfg config.Config, emit func(Outcome)) Summary {
	var summary Summary

	record := func(dir, name string) {
		o := s.Decide(cfg, dir, name)
		summary.Add(o)
		if o.Kind != SkippedLowercase && emit != nil {
			emit(o)
		}
	}

	for l := range s.walker.BottomUp(filepath.Clean(cfg.TargetDir)) {
		for _, name := range l.Files {
			record(l.Dir, name)
		}
		for _, name := range l.Dirs {
			record(l.Dir, name)
		}
	}

	return summary
}
