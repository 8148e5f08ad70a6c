package version

import "errors"

// ErrEmptyPattern is returned constructing a Pattern with no segments.
var ErrEmptyPattern = errors.New("version: pattern must have at least one segment")

// ErrUnparseable is returned when a Pattern fails to consume an entire
// version-id string.
var ErrUnparseable = errors.New("version: id does not match pattern")

// Pattern is a non-empty, ordered tuple of Segments, most-significant
// first, defining a version-id grammar.
type Pattern struct {
	segments []Segment
}

// NewPattern constructs a Pattern from one or more Segments in
// most-significant-first order.
func NewPattern(segments ...Segment) (*Pattern, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyPattern
	}
	cp := make([]Segment, len(segments))
	copy(cp, segments)
	return &Pattern{segments: cp}, nil
}

// NumSegments returns the number of segments in the pattern.
func (p *Pattern) NumSegments() int { return len(p.segments) }

// Segment returns the i-th segment.
func (p *Pattern) Segment(i int) Segment { return p.segments[i] }

// FirstVersion returns the Version with all cursors at zero — the pattern's
// minimum representable version.
func (p *Pattern) FirstVersion() *Version {
	return &Version{pattern: p, cursors: make([]int, len(p.segments))}
}

// GetVersion parses id against the pattern left to right, greedily, one
// segment at a time under each Segment's own matching rule. It returns
// ErrUnparseable if any segment fails to match or if characters remain
// after the last segment.
func (p *Pattern) GetVersion(id string) (*Version, error) {
	cursors := make([]int, len(p.segments))
	pos := 0
	for i, seg := range p.segments {
		idx := seg.Parse(id, pos)
		if idx == -1 {
			return nil, ErrUnparseable
		}
		cursors[i] = idx
		pos += seg.ElementLength(idx)
	}
	if pos != len(id) {
		return nil, ErrUnparseable
	}
	v := &Version{pattern: p, cursors: cursors}
	v.id = id
	return v, nil
}
