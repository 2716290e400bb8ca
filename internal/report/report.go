// Package report records the outcomes of a rename run and persists them as YAML.
package report

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmcdonald/lowercase/internal/renamer"
)

type Entry struct {
	Path    string `yaml:"path"` // Directory relative to the root, "." for the root itself
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Outcome string `yaml:"outcome"`
	Error   string `yaml:"error,omitempty"`
}

type Totals struct {
	Renamed    int `yaml:"renamed"`
	Simulated  int `yaml:"simulated"`
	Collisions int `yaml:"collisions"`
	Failed     int `yaml:"failed"`
	Unchanged  int `yaml:"unchanged"`
}

type Report struct {
	Root       string    `yaml:"root"`
	DryRun     bool      `yaml:"dry_run"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at,omitempty"`
	Entries    []Entry   `yaml:"entries"`
	Totals     Totals    `yaml:"totals"`
}

func New(root string, dryRun bool, startedAt time.Time) *Report {
	return &Report{
		Root:      root,
		DryRun:    dryRun,
		StartedAt: startedAt,
		Entries:   []Entry{},
	}
}

// Add appends one outcome. Paths outside the root are kept absolute.
func (r *Report) Add(o renamer.Outcome) {
	rel, err := filepath.Rel(r.Root, o.Dir)
	if err != nil {
		rel = o.Dir
	}

	entry := Entry{
		Path:    filepath.ToSlash(rel),
		From:    o.OldName,
		To:      o.NewName,
		Outcome: o.Kind.String(),
	}
	if o.Err != nil {
		entry.Error = o.Err.Error()
	}
	r.Entries = append(r.Entries, entry)
}

// Finish stamps the end time and copies the run totals.
func (r *Report) Finish(s renamer.Summary, finishedAt time.Time) {
	r.FinishedAt = finishedAt
	r.Totals = Totals{
		Renamed:    s.Renamed,
		Simulated:  s.Simulated,
		Collisions: s.Collisions,
		Failed:     s.Failed,
		Unchanged:  s.Unchanged,
	}
}

func (r *Report) Save(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	return &r, nil
}
