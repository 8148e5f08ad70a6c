// Package version implements a caller-declared grammar of Segments that
// parses and renders version identifier strings, and the ordered cursor
// tuple (Version) that grammar produces.
package version

import (
	"errors"
	"strconv"
)

// Unbounded is a sentinel upper bound for a Range segment whose caller wants
// "no practical maximum" (e.g. a major-version counter). It is an ordinary
// int; there is nothing magic about it beyond being a large, safe bound.
const Unbounded = 1<<31 - 1

var (
	// ErrEmptyLiteral is returned constructing a Literal segment with no alternatives.
	ErrEmptyLiteral = errors.New("version: literal segment needs at least one alternative")
	// ErrZeroStep is returned constructing a Range segment with step == 0.
	ErrZeroStep = errors.New("version: range step must not be zero")
	// ErrDegenerateRange is returned constructing a Range segment with start == end.
	ErrDegenerateRange = errors.New("version: range start must not equal end")
	// ErrStepSign is returned when step's sign does not match the sign of end-start.
	ErrStepSign = errors.New("version: range step sign must match direction from start to end")
	// ErrNegativeValue is returned when a Range would generate a negative value.
	ErrNegativeValue = errors.New("version: range must not generate negative values")
	// ErrFillOverflow is returned when fill is set but too small for a generated value's digit count.
	ErrFillOverflow = errors.New("version: range value exceeds fill width")
)

// Segment is one grammar element of a version-id Pattern: a finite,
// ordered set of renderable/parseable string forms, indexed by cursor.
type Segment interface {
	// Length returns the number of elements (the cursor's exclusive upper bound).
	Length() int
	// Element renders the i-th element as a string.
	Element(i int) string
	// ElementLength returns len(Element(i)) without allocating.
	ElementLength(i int) int
	// Parse attempts to match this segment's grammar against id starting at
	// index. It returns the matched element's index, or -1 if nothing matches.
	Parse(id string, index int) int
}

// Literal is a Segment over a finite ordered list of string alternatives.
type Literal struct {
	alternatives []string
}

// NewLiteral constructs a Literal segment from one or more alternatives, in
// the order a Parse should try them.
func NewLiteral(alternatives ...string) (*Literal, error) {
	if len(alternatives) == 0 {
		return nil, ErrEmptyLiteral
	}
	cp := make([]string, len(alternatives))
	copy(cp, alternatives)
	return &Literal{alternatives: cp}, nil
}

// Length implements Segment.
func (l *Literal) Length() int { return len(l.alternatives) }

// Element implements Segment.
func (l *Literal) Element(i int) string { return l.alternatives[i] }

// ElementLength implements Segment.
func (l *Literal) ElementLength(i int) int { return len(l.alternatives[i]) }

// Parse implements Segment: the index of the first alternative that is a
// prefix of id starting at index, else -1.
func (l *Literal) Parse(id string, index int) int {
	if index > len(id) {
		return -1
	}
	rest := id[index:]
	for i, alt := range l.alternatives {
		if len(alt) <= len(rest) && rest[:len(alt)] == alt {
			return i
		}
	}
	return -1
}

// Range is a Segment over integers start + step*i for i in [0, Length()).
// minDigits/maxDigits cache the digit-count bounds across the whole range,
// computed once at construction from the two endpoint values rather than by
// scanning every element — valid because the sequence is strictly monotonic
// (constant step sign), so its extrema, and hence its digit-count extrema,
// always sit at i=0 and i=length-1.
type Range struct {
	start, step, length, fill int
	minDigits, maxDigits      int
}

// NewRange constructs a Range segment. fill of 0 disables zero-padding.
// Validity: step != 0; start != end; sign(step) == sign(end-start); every
// generated value is >= 0; if fill > 0, every value's decimal digit count
// must not exceed fill.
func NewRange(start, end, step, fill int) (*Range, error) {
	if step == 0 {
		return nil, ErrZeroStep
	}
	if start == end {
		return nil, ErrDegenerateRange
	}
	diff := end - start
	if (diff > 0) != (step > 0) {
		return nil, ErrStepSign
	}
	absDiff := diff
	if absDiff < 0 {
		absDiff = -absDiff
	}
	absStep := step
	if absStep < 0 {
		absStep = -absStep
	}
	length := (absDiff + absStep - 1) / absStep // ceil(|end-start|/|step|)

	first := start
	last := start + step*(length-1)
	minValue, maxValue := first, last
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}
	if minValue < 0 {
		return nil, ErrNegativeValue
	}
	minDigits, maxDigits := digitCount(minValue), digitCount(maxValue)
	if fill > 0 && maxDigits > fill {
		return nil, ErrFillOverflow
	}

	return &Range{
		start: start, step: step, length: length, fill: fill,
		minDigits: minDigits, maxDigits: maxDigits,
	}, nil
}

// Length implements Segment.
func (r *Range) Length() int { return r.length }

func (r *Range) value(i int) int { return r.start + r.step*i }

// Element implements Segment.
func (r *Range) Element(i int) string {
	v := r.value(i)
	s := strconv.Itoa(v)
	if r.fill > 0 && len(s) < r.fill {
		s = zeroPad(s, r.fill)
	}
	return s
}

// ElementLength implements Segment.
func (r *Range) ElementLength(i int) int { return len(r.Element(i)) }

// indexOf returns the cursor i such that value(i) == v, or -1 if v is not
// one of this Range's generated values.
func (r *Range) indexOf(v int) int {
	d := v - r.start
	if d%r.step != 0 {
		return -1
	}
	i := d / r.step
	if i < 0 || i >= r.length {
		return -1
	}
	return i
}

// Parse implements Segment. With fill set, it consumes exactly fill digits.
// Without fill, it accumulates the maximal run of decimal digits (capped at
// the widest element's digit count), then searches decreasing prefix
// lengths for the longest in-range match, so "12" in a range containing
// both 1 and 12 parses as 12; a leading-zero prefix shorter than the full
// accumulated run is skipped (refusing the "0d..." pathology) except at the
// full run length, where ordinary decimal parsing applies.
func (r *Range) Parse(id string, index int) int {
	if r.fill > 0 {
		if index+r.fill > len(id) {
			return -1
		}
		sub := id[index : index+r.fill]
		if !allDigits(sub) {
			return -1
		}
		v, err := strconv.Atoi(sub)
		if err != nil {
			return -1
		}
		return r.indexOf(v)
	}

	maxLen := r.maxDigits
	n := 0
	for n < maxLen && index+n < len(id) && isDigit(id[index+n]) {
		n++
	}
	if n == 0 {
		return -1
	}
	minLen := r.minDigits
	if minLen > n {
		minLen = n
	}
	for k := n; k >= minLen; k-- {
		sub := id[index : index+k]
		if k < n && sub[0] == '0' {
			continue
		}
		v, err := strconv.Atoi(sub)
		if err != nil {
			continue
		}
		if i := r.indexOf(v); i != -1 {
			return i
		}
	}
	return -1
}

func digitCount(v int) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v > 0 {
		n++
		v /= 10
	}
	return n
}

func zeroPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
