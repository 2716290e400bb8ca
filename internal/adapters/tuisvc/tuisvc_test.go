package tuisvc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmcdonald/lowercase/internal/config"
	"github.com/jmcdonald/lowercase/internal/mocks"
)

func TestPlanDoesNotRename(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddFile("/target/Docs/Notes.TXT")
	mockFS.AddFile("/target/Same.txt")
	mockFS.AddFile("/target/same.txt")
	svc := NewWithFileSystem(mockFS)

	items, err := svc.Plan(config.Config{TargetDir: "/target"})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(mockFS.RenameCalls) != 0 {
		t.Errorf("RenameCalls = %v, expected none", mockFS.RenameCalls)
	}
	if len(items) != 3 {
		t.Fatalf("items = %+v, expected 3", items)
	}

	first := items[0]
	if first.Path != "Docs" || first.OldName != "Notes.TXT" || first.NewName != "notes.txt" || first.Outcome != "simulated" {
		t.Errorf("items[0] = %+v, expected Docs/Notes.TXT simulated", first)
	}
	if items[1].OldName != "Same.txt" || items[1].Outcome != "skipped-collision" {
		t.Errorf("items[1] = %+v, expected Same.txt collision", items[1])
	}
	if items[2].Path != "." || items[2].OldName != "Docs" {
		t.Errorf("items[2] = %+v, expected Docs at root", items[2])
	}
}

func TestPlanIgnoresConfigDryRunFlag(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddFile("/target/A.txt")
	svc := NewWithFileSystem(mockFS)

	if _, err := svc.Plan(config.Config{TargetDir: "/target", DryRun: false}); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(mockFS.RenameCalls) != 0 {
		t.Error("Plan must never rename")
	}
}

func TestApplyRenames(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddFile("/target/Docs/Notes.TXT")
	mockFS.AddFile("/target/Locked.txt")
	mockFS.RenameErrors["/target/Locked.txt"] = os.ErrPermission
	svc := NewWithFileSystem(mockFS)

	result, err := svc.Apply(config.Config{TargetDir: "/target", DryRun: true})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result.Renamed != 2 || result.Failed != 1 {
		t.Errorf("result = %+v, expected 2 renamed, 1 failed", result)
	}
	if !mockFS.Exists("/target/docs/notes.txt") {
		t.Errorf("tree = %v, expected docs/notes.txt", mockFS.Paths())
	}

	var failed bool
	for _, item := range result.Items {
		if item.OldName == "Locked.txt" {
			failed = item.Outcome == "failed" && item.Error != ""
		}
	}
	if !failed {
		t.Errorf("items = %+v, expected Locked.txt failed with error", result.Items)
	}
}

func TestPlanMissingTarget(t *testing.T) {
	svc := NewWithFileSystem(mocks.NewMockFileSystem())

	if _, err := svc.Plan(config.Config{TargetDir: "/gone"}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Plan error = %v, expected not-exist", err)
	}
	if _, err := svc.Apply(config.Config{TargetDir: "/gone"}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Apply error = %v, expected not-exist", err)
	}
}

func TestPlanTargetIsFile(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddFile("/target")
	svc := NewWithFileSystem(mockFS)

	if _, err := svc.Plan(config.Config{TargetDir: "/target"}); !errors.Is(err, config.ErrNotDirectory) {
		t.Errorf("Plan error = %v, expected ErrNotDirectory", err)
	}
}

func TestLoadConfigResolves(t *testing.T) {
	dir := t.TempDir()
	svc := New()

	cfg, err := svc.LoadConfig([]string{"--dry-run", dir})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TargetDir != filepath.Clean(dir) || !cfg.DryRun {
		t.Errorf("cfg = %+v, expected %s with dry run", cfg, dir)
	}

	if _, err := svc.LoadConfig([]string{filepath.Join(dir, "missing")}); !errors.Is(err, config.ErrTargetNotFound) {
		t.Errorf("LoadConfig error = %v, expected ErrTargetNotFound", err)
	}
}
