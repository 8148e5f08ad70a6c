package version

import "testing"

func mustPattern(t *testing.T, segs ...Segment) *Pattern {
	t.Helper()
	p, err := NewPattern(segs...)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	return p
}

func TestPatternParseExample(t *testing.T) {
	r1, _ := NewRange(1, Unbounded, 1, 0)
	dot, _ := NewLiteral(".")
	r2, _ := NewRange(0, 10, 1, 0)
	p := mustPattern(t, r1, dot, r2)

	v, err := p.GetVersion("2.4")
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	wantCursors := []int{1, 0, 4}
	for i, w := range wantCursors {
		if v.Cursor(i) != w {
			t.Errorf("cursor(%d) = %d, want %d", i, v.Cursor(i), w)
		}
	}

	v2, err := p.GetVersion("12.9")
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	wantCursors2 := []int{11, 0, 9}
	for i, w := range wantCursors2 {
		if v2.Cursor(i) != w {
			t.Errorf("cursor(%d) = %d, want %d", i, v2.Cursor(i), w)
		}
	}

	first := p.FirstVersion()
	if first.ID() != "1.0" {
		t.Errorf("first_version().id = %q, want %q", first.ID(), "1.0")
	}
}

func TestVersionNextCarries(t *testing.T) {
	seg, _ := NewRange(0, 2, 1, 0)
	p := mustPattern(t, seg, seg)
	v := p.FirstVersion()
	v.Next()
	if v.Cursor(0) != 0 || v.Cursor(1) != 1 {
		t.Fatalf("unexpected cursors after one Next: %d,%d", v.Cursor(0), v.Cursor(1))
	}
	v.Next() // carries: (0,1)->(1,0)
	if v.Cursor(0) != 1 || v.Cursor(1) != 0 {
		t.Fatalf("expected carry to (1,0), got (%d,%d)", v.Cursor(0), v.Cursor(1))
	}
}

func TestVersionNextWrapsAtTerminal(t *testing.T) {
	seg, _ := NewRange(0, 2, 1, 0)
	p := mustPattern(t, seg)
	v := p.FirstVersion()
	v.Next() // (1)
	v.Next() // terminal cursor 1 (max index), overflow -> wrap to 0
	if v.Cursor(0) != 0 {
		t.Fatalf("expected wrap to 0, got %d", v.Cursor(0))
	}
}

func TestVersionCompareOrdering(t *testing.T) {
	seg, _ := NewRange(0, 5, 1, 0)
	p := mustPattern(t, seg)
	v := p.FirstVersion()
	next := v.Copy()
	next.Next()
	cmp, err := v.Compare(next)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp >= 0 {
		t.Fatalf("expected v < next, got cmp=%d", cmp)
	}
}

func TestVersionCompareAcrossPatternsIsError(t *testing.T) {
	segA, _ := NewRange(0, 5, 1, 0)
	segB, _ := NewRange(0, 5, 1, 0)
	pA := mustPattern(t, segA)
	pB := mustPattern(t, segB)
	_, err := pA.FirstVersion().Compare(pB.FirstVersion())
	if err != ErrIncomparableVersions {
		t.Fatalf("expected ErrIncomparableVersions, got %v", err)
	}
}

func TestGetVersionRoundTrip(t *testing.T) {
	seg1, _ := NewRange(0, 10, 1, 0)
	dot, _ := NewLiteral(".")
	seg2, _ := NewRange(0, 10, 1, 0)
	p := mustPattern(t, seg1, dot, seg2)

	for i := 0; i < seg1.Length(); i++ {
		for j := 0; j < seg2.Length(); j++ {
			cursors := []int{i, 0, j}
			v := &Version{pattern: p, cursors: cursors}
			id := v.ID()
			reparsed, err := p.GetVersion(id)
			if err != nil {
				t.Fatalf("GetVersion(%q): %v", id, err)
			}
			for k, c := range cursors {
				if reparsed.Cursor(k) != c {
					t.Fatalf("round trip mismatch at cursor %d for id %q: got %d want %d", k, id, reparsed.Cursor(k), c)
				}
			}
		}
	}
}

func TestGetVersionUnparseable(t *testing.T) {
	seg, _ := NewRange(0, 5, 1, 0)
	p := mustPattern(t, seg)
	if _, err := p.GetVersion("abc"); err != ErrUnparseable {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
	if _, err := p.GetVersion("1x"); err != ErrUnparseable {
		t.Fatalf("expected ErrUnparseable for trailing garbage, got %v", err)
	}
}
