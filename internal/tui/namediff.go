package tui

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// NameSegment is a run of characters in the new name.
type NameSegment struct {
	Text    string
	Changed bool // True when the run differs from the old name
}

// NameSegments splits newName into runs that are unchanged from, or
// different to, oldName.
func NameSegments(oldName, newName string) []NameSegment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldName, newName, false)

	var segments []NameSegment
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			segments = append(segments, NameSegment{Text: d.Text})
		case diffmatchpatch.DiffInsert:
			segments = append(segments, NameSegment{Text: d.Text, Changed: true})
		}
	}
	return segments
}

// ChangedRunes counts the characters of newName that differ from oldName.
func ChangedRunes(oldName, newName string) int {
	n := 0
	for _, s := range NameSegments(oldName, newName) {
		if s.Changed {
			n += len([]rune(s.Text))
		}
	}
	return n
}

// renderName renders newName with its changed characters highlighted.
func renderName(oldName, newName string) string {
	var b strings.Builder
	for _, s := range NameSegments(oldName, newName) {
		if s.Changed {
			b.WriteString(changedStyle.Render(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
