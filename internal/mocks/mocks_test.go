package mocks

import (
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/jmcdonald/lowercase/internal/config"
	"github.com/jmcdonald/lowercase/internal/ports"
)

func TestMockFileSystemReadDir(t *testing.T) {
	mockFS := NewMockFileSystem()
	mockFS.AddFile("/projects/b.txt")
	mockFS.AddDir("/projects/A")
	mockFS.AddFile("/projects/A/deep.txt")

	entries, err := mockFS.ReadDir("/projects")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if !slices.Equal(names, []string{"A", "b.txt"}) {
		t.Errorf("names = %v, expected [A b.txt]", names)
	}
	if !entries[0].IsDir() || entries[1].IsDir() {
		t.Error("expected A to be a directory and b.txt a file")
	}

	if _, err := mockFS.ReadDir("/projects/b.txt"); err == nil {
		t.Error("ReadDir should fail on a file")
	}
	if _, err := mockFS.ReadDir("/nonexistent"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadDir error = %v, expected not-exist", err)
	}
}

func TestMockFileSystemErrorInjection(t *testing.T) {
	mockFS := NewMockFileSystem()
	mockFS.AddFile("/dir/file.txt")
	mockFS.ReadDirErrors["/dir"] = errors.New("injected error")
	mockFS.RenameErrors["/dir/file.txt"] = os.ErrPermission

	if _, err := mockFS.ReadDir("/dir"); err == nil || err.Error() != "injected error" {
		t.Errorf("Expected injected error, got: %v", err)
	}
	if err := mockFS.Rename("/dir/file.txt", "/dir/other.txt"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("Expected permission error, got: %v", err)
	}
	if !mockFS.Exists("/dir/file.txt") {
		t.Error("failed rename must leave the source in place")
	}
}

func TestMockFileSystemRenameMovesSubtree(t *testing.T) {
	mockFS := NewMockFileSystem()
	mockFS.AddFile("/root/Dir/sub/file.txt")
	mockFS.AddFile("/root/Dirty.txt")

	if err := mockFS.Rename("/root/Dir", "/root/dir"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	expected := []string{"/", "/root", "/root/Dirty.txt", "/root/dir", "/root/dir/sub", "/root/dir/sub/file.txt"}
	if got := mockFS.Paths(); !slices.Equal(got, expected) {
		t.Errorf("Paths = %v, expected %v", got, expected)
	}

	if len(mockFS.RenameCalls) != 1 || mockFS.RenameCalls[0] != (RenameCall{Old: "/root/Dir", New: "/root/dir"}) {
		t.Errorf("RenameCalls = %v", mockFS.RenameCalls)
	}
}

func TestMockFileSystemRenameMissing(t *testing.T) {
	mockFS := NewMockFileSystem()

	if err := mockFS.Rename("/nope", "/also-nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Rename error = %v, expected not-exist", err)
	}
}

func TestMockFileSystemLstat(t *testing.T) {
	mockFS := NewMockFileSystem()
	mockFS.AddDir("/a/b")

	info, err := mockFS.Lstat("/a/b/")
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if !info.IsDir() || info.Name() != "b" {
		t.Errorf("info = %s dir=%v, expected directory b", info.Name(), info.IsDir())
	}
	if _, err := mockFS.Lstat("/a/c"); !os.IsNotExist(err) {
		t.Errorf("Lstat error = %v, expected not-exist", err)
	}
}

func TestMockTUIService(t *testing.T) {
	svc := NewMockTUIService()
	svc.PlanItems = []ports.TUIRenameItem{{OldName: "A", NewName: "a", Outcome: "simulated"}}
	svc.ApplyResult = ports.TUIApplyResult{Renamed: 1}

	cfg, err := svc.LoadConfig([]string{"--dry-run"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TargetDir != "/test/target" {
		t.Errorf("TargetDir = %q", cfg.TargetDir)
	}

	items, _ := svc.Plan(cfg)
	if len(items) != 1 {
		t.Errorf("items = %d, expected 1", len(items))
	}
	result, _ := svc.Apply(cfg)
	if result.Renamed != 1 {
		t.Errorf("Renamed = %d, expected 1", result.Renamed)
	}

	if len(svc.LoadConfigCalls) != 1 || len(svc.PlanCalls) != 1 || len(svc.ApplyCalls) != 1 {
		t.Errorf("calls = %d/%d/%d, expected 1/1/1", len(svc.LoadConfigCalls), len(svc.PlanCalls), len(svc.ApplyCalls))
	}

	svc.ConfigError = errors.New("bad config")
	if _, err := svc.LoadConfig(nil); err == nil {
		t.Error("LoadConfig should return injected error")
	}
	svc.PlanError = errors.New("plan failed")
	if _, err := svc.Plan(config.Config{}); err == nil {
		t.Error("Plan should return injected error")
	}
}
