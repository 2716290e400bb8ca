package ports

import "github.com/jmcdonald/lowercase/internal/config"

// TUIRenameItem is one planned or applied rename for display.
type TUIRenameItem struct {
	Path    string // Parent directory relative to the target, "." for the target itself
	OldName string
	NewName string
	Outcome string // renamer.Kind string form
	Error   string
}

// TUIApplyResult contains the result of applying the plan.
type TUIApplyResult struct {
	Items      []TUIRenameItem
	Renamed    int
	Collisions int
	Failed     int
}

// TUIService provides operations needed by the TUI.
// This abstraction allows the TUI to be tested without touching the filesystem.
type TUIService interface {
	// LoadConfig builds and resolves the configuration from arguments.
	LoadConfig(args []string) (config.Config, error)

	// Plan computes the renames a real run would attempt, without applying them.
	Plan(cfg config.Config) ([]TUIRenameItem, error)

	// Apply performs the rename pass for real.
	Apply(cfg config.Config) (TUIApplyResult, error)
}
