package walker

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jmcdonald/lowercase/internal/mocks"
)

func collect(w *Walker, root string) []Listing {
	var out []Listing
	for l := range w.BottomUp(root) {
		out = append(out, l)
	}
	return out
}

func dirsOf(listings []Listing) []string {
	dirs := make([]string, len(listings))
	for i, l := range listings {
		dirs[i] = l.Dir
	}
	return dirs
}

func TestBottomUpOrder(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddFile("/root/A/B/File.TXT")
	mockFS.AddFile("/root/A/note.md")
	mockFS.AddDir("/root/C")

	listings := collect(New(mockFS), "/root")

	got := dirsOf(listings)
	expected := []string{"/root/A/B", "/root/A", "/root/C", "/root"}
	if !slices.Equal(got, expected) {
		t.Fatalf("order = %v, expected %v", got, expected)
	}

	// Every directory must come after all of its descendants
	seen := make(map[string]int)
	for i, dir := range got {
		seen[dir] = i
	}
	for _, dir := range got {
		parent := filepath.Dir(dir)
		if idx, ok := seen[parent]; ok && idx < seen[dir] {
			t.Errorf("parent %s yielded before child %s", parent, dir)
		}
	}
}

func TestBottomUpGroupsFilesAndDirs(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddFile("/root/Readme.MD")
	mockFS.AddFile("/root/a.txt")
	mockFS.AddDir("/root/Docs")

	listings := collect(New(mockFS), "/root")
	last := listings[len(listings)-1]

	if last.Dir != "/root" {
		t.Fatalf("last listing = %s, expected /root", last.Dir)
	}
	if !slices.Equal(last.Files, []string{"Readme.MD", "a.txt"}) {
		t.Errorf("Files = %v, expected [Readme.MD a.txt]", last.Files)
	}
	if !slices.Equal(last.Dirs, []string{"Docs"}) {
		t.Errorf("Dirs = %v, expected [Docs]", last.Dirs)
	}
}

func TestBottomUpMissingRoot(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()

	var reported []string
	w := New(mockFS)
	w.OnError = func(dir string, err error) {
		reported = append(reported, dir)
	}

	listings := collect(w, "/nope")
	if len(listings) != 0 {
		t.Errorf("listings = %d, expected 0", len(listings))
	}
	if !slices.Equal(reported, []string{"/nope"}) {
		t.Errorf("reported = %v, expected [/nope]", reported)
	}
}

func TestBottomUpSkipsUnreadableSubtree(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddFile("/root/Locked/Inner/x.txt")
	mockFS.AddFile("/root/Open/y.txt")
	mockFS.ReadDirErrors["/root/Locked"] = os.ErrPermission

	var errs []error
	w := New(mockFS)
	w.OnError = func(dir string, err error) { errs = append(errs, err) }

	got := dirsOf(collect(w, "/root"))
	expected := []string{"/root/Open", "/root"}
	if !slices.Equal(got, expected) {
		t.Errorf("order = %v, expected %v", got, expected)
	}
	if len(errs) != 1 || !errors.Is(errs[0], os.ErrPermission) {
		t.Errorf("errors = %v, expected one permission error", errs)
	}
}

func TestBottomUpEarlyStop(t *testing.T) {
	mockFS := mocks.NewMockFileSystem()
	mockFS.AddDir("/root/a/b")
	mockFS.AddDir("/root/c")

	count := 0
	for range New(mockFS).BottomUp("/root") {
		count++
		break
	}
	if count != 1 {
		t.Errorf("count = %d, expected 1", count)
	}
	// /root/c must never be read once the consumer stopped
	if slices.Contains(mockFS.ReadDirCalls, "/root/c") {
		t.Errorf("ReadDir called on /root/c after break: %v", mockFS.ReadDirCalls)
	}
}

func TestBottomUpRealFilesystem(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "A", "B"), 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "A", "B", "File.TXT"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	got := dirsOf(collect(NewDefault(), root))
	expected := []string{
		filepath.Join(root, "A", "B"),
		filepath.Join(root, "A"),
		root,
	}
	if !slices.Equal(got, expected) {
		t.Errorf("order = %v, expected %v", got, expected)
	}
}

func TestBottomUpDoesNotFollowSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "Real")
	if err := os.MkdirAll(filepath.Join(target, "Sub"), 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(root, "Link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	listings := collect(NewDefault(), root)
	for _, l := range listings {
		if l.Dir == filepath.Join(root, "Link") {
			t.Errorf("walked into symlinked directory %s", l.Dir)
		}
	}
	last := listings[len(listings)-1]
	if !slices.Contains(last.Files, "Link") {
		t.Errorf("Files = %v, expected symlink reported as file", last.Files)
	}
}
