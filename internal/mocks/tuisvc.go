package mocks

import (
	"github.com/jmcdonald/lowercase/internal/config"
	"github.com/jmcdonald/lowercase/internal/ports"
)

// MockTUIService implements ports.TUIService for testing.
type MockTUIService struct {
	// ConfigResult is the config to return from LoadConfig
	ConfigResult config.Config
	// ConfigError is the error to return from LoadConfig
	ConfigError error

	// PlanItems is the plan to return from Plan
	PlanItems []ports.TUIRenameItem
	// PlanError is the error to return from Plan
	PlanError error

	// ApplyResult is the result to return from Apply
	ApplyResult ports.TUIApplyResult
	// ApplyError is the error to return from Apply
	ApplyError error

	// Call tracking
	LoadConfigCalls [][]string
	PlanCalls       []config.Config
	ApplyCalls      []config.Config
}

// NewMockTUIService creates a new mock TUI service.
func NewMockTUIService() *MockTUIService {
	return &MockTUIService{
		ConfigResult: config.Config{TargetDir: "/test/target"},
	}
}

// LoadConfig builds and resolves the configuration from arguments.
func (m *MockTUIService) LoadConfig(args []string) (config.Config, error) {
	m.LoadConfigCalls = append(m.LoadConfigCalls, args)
	if m.ConfigError != nil {
		return config.Config{}, m.ConfigError
	}
	return m.ConfigResult, nil
}

// Plan computes the renames a real run would attempt.
func (m *MockTUIService) Plan(cfg config.Config) ([]ports.TUIRenameItem, error) {
	m.PlanCalls = append(m.PlanCalls, cfg)
	if m.PlanError != nil {
		return nil, m.PlanError
	}
	return m.PlanItems, nil
}

// Apply performs the rename pass for real.
func (m *MockTUIService) Apply(cfg config.Config) (ports.TUIApplyResult, error) {
	m.ApplyCalls = append(m.ApplyCalls, cfg)
	if m.ApplyError != nil {
		return ports.TUIApplyResult{}, m.ApplyError
	}
	return m.ApplyResult, nil
}

// Compile-time check that MockTUIService implements ports.TUIService.
var _ ports.TUIService = (*MockTUIService)(nil)
