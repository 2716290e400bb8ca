// Package tuisvc provides the real implementation of ports.TUIService.
package tuisvc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmcdonald/lowercase/internal/adapters/osfs"
	"github.com/jmcdonald/lowercase/internal/config"
	"github.com/jmcdonald/lowercase/internal/ports"
	"github.com/jmcdonald/lowercase/internal/renamer"
)

// Service implements ports.TUIService on top of the renamer.
type Service struct {
	fs ports.FileSystem
}

// New creates a new TUI service over the real filesystem.
func New() *Service {
	return NewWithFileSystem(osfs.New())
}

// NewWithFileSystem creates a TUI service over the given filesystem.
func NewWithFileSystem(fs ports.FileSystem) *Service {
	return &Service{fs: fs}
}

// LoadConfig builds and resolves the configuration from arguments and the environment.
func (s *Service) LoadConfig(args []string) (config.Config, error) {
	cfg, err := config.Load(args, os.Getenv)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.Resolve()
}

// Plan runs the rename pass in dry-run mode and returns every outcome.
func (s *Service) Plan(cfg config.Config) ([]ports.TUIRenameItem, error) {
	cfg.DryRun = true
	if err := s.checkTarget(cfg); err != nil {
		return nil, err
	}

	var items []ports.TUIRenameItem
	renamer.NewService(s.fs).Run(cfg, func(o renamer.Outcome) {
		items = append(items, toItem(cfg.TargetDir, o))
	})
	return items, nil
}

// Apply runs the rename pass for real.
func (s *Service) Apply(cfg config.Config) (ports.TUIApplyResult, error) {
	cfg.DryRun = false
	if err := s.checkTarget(cfg); err != nil {
		return ports.TUIApplyResult{}, err
	}

	var result ports.TUIApplyResult
	summary := renamer.NewService(s.fs).Run(cfg, func(o renamer.Outcome) {
		result.Items = append(result.Items, toItem(cfg.TargetDir, o))
	})

	result.Renamed = summary.Renamed
	result.Collisions = summary.Collisions
	result.Failed = summary.Failed
	return result, nil
}

// checkTarget fails when the target disappeared after the config was resolved.
func (s *Service) checkTarget(cfg config.Config) error {
	info, err := s.fs.Lstat(cfg.TargetDir)
	if err != nil {
		return fmt.Errorf("reading target: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", config.ErrNotDirectory, cfg.TargetDir)
	}
	return nil
}

func toItem(root string, o renamer.Outcome) ports.TUIRenameItem {
	rel, err := filepath.Rel(root, o.Dir)
	if err != nil {
		rel = o.Dir
	}
	item := ports.TUIRenameItem{
		Path:    filepath.ToSlash(rel),
		OldName: o.OldName,
		NewName: o.NewName,
		Outcome: o.Kind.String(),
	}
	if o.Err != nil {
		item.Error = o.Err.Error()
	}
	return item
}

// Compile-time check that Service implements ports.TUIService.
var _ ports.TUIService = (*Service)(nil)
