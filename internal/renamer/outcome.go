package renamer

import "path/filepath"

// Kind is the terminal state of one considered entry.
type Kind int

const (
	Renamed Kind = iota
	SkippedCollision
	SkippedLowercase
	Failed
	Simulated
)

func (k Kind) String() string {
	switch k {
	case Renamed:
		return "renamed"
	case SkippedCollision:
		return "skipped-collision"
	case SkippedLowercase:
		return "skipped-lowercase"
	case Failed:
		return "failed"
	case Simulated:
		return "simulated"
	default:
		return "unknown"
	}
}

// Outcome is the result of deciding on one (directory, name) pair.
type Outcome struct {
	Dir     string
	OldName string
	NewName string
	Kind    Kind
	Err     error // Set only when Kind is Failed
}

// OldPath returns the entry's path before the rename.
func (o Outcome) OldPath() string {
	return filepath.Join(o.Dir, o.OldName)
}

// NewPath returns the entry's intended path after the rename.
func (o Outcome) NewPath() string {
	return filepath.Join(o.Dir, o.NewName)
}

// Summary counts outcomes for one run.
type Summary struct {
	Renamed    int
	Simulated  int
	Collisions int
	Failed     int
	Unchanged  int
}

// Add records one outcome.
func (s *Summary) Add(o Outcome) {
	switch o.Kind {
	case Renamed:
		s.Renamed++
	case Simulated:
		s.Simulated++
	case SkippedCollision:
		s.Collisions++
	case Failed:
		s.Failed++
	case SkippedLowercase:
		s.Unchanged++
	}
}
