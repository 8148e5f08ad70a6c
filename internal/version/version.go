package version

import (
	"errors"
	"strings"
)

// ErrIncomparableVersions is returned comparing Versions built from
// different Patterns; doing so is a programmer error.
var ErrIncomparableVersions = errors.New("version: cannot compare versions from different patterns")

// Version is a point in a Pattern's space: one cursor per segment, plus a
// lazily (re)built rendered id string. It is immutable except for Next,
// which mutates a locally-owned copy.
type Version struct {
	pattern *Pattern
	cursors []int
	id      string // cached rendering; empty means "needs rebuild"
}

// Pattern returns the Version's owning Pattern.
func (v *Version) Pattern() *Pattern { return v.pattern }

// Cursor returns the cursor value at segment i.
func (v *Version) Cursor(i int) int { return v.cursors[i] }

// ID renders the version as its id string, rebuilding the cache if needed.
func (v *Version) ID() string {
	if v.id == "" {
		v.id = v.render()
	}
	return v.id
}

func (v *Version) render() string {
	var b strings.Builder
	for i, c := range v.cursors {
		b.WriteString(v.pattern.Segment(i).Element(c))
	}
	return b.String()
}

// Copy returns an independent copy of v, safe to mutate with Next without
// affecting the original.
func (v *Version) Copy() *Version {
	cp := make([]int, len(v.cursors))
	copy(cp, v.cursors)
	return &Version{pattern: v.pattern, cursors: cp, id: v.id}
}

// Next advances the Version to its successor: increments the
// least-significant cursor, carrying left on overflow. At the terminal
// state (all cursors at their maxima) it wraps to all-zero; this is
// documented behavior, never reached by the Updater under normal gating
// (it only ever advances while current <= defaults).
func (v *Version) Next() {
	v.id = ""
	for i := len(v.cursors) - 1; i >= 0; i-- {
		seg := v.pattern.Segment(i)
		v.cursors[i]++
		if v.cursors[i] < seg.Length() {
			return
		}
		v.cursors[i] = 0
	}
}

// Compare returns -1, 0, or 1 comparing v to other lexicographically over
// cursors from most-significant to least. It returns ErrIncomparableVersions
// if v and other were built from different Patterns.
func (v *Version) Compare(other *Version) (int, error) {
	if v.pattern != other.pattern {
		return 0, ErrIncomparableVersions
	}
	for i := range v.cursors {
		if v.cursors[i] != other.cursors[i] {
			if v.cursors[i] < other.cursors[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}
