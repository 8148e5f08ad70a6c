package document

import (
	"testing"

	"github.com/oriys/boostyaml/internal/route"
)

func TestSectionPutGetOrder(t *testing.T) {
	root := NewSection()
	root.Put("b", NewLeaf(2))
	root.Put("a", NewLeaf(1))
	root.Put("b", NewLeaf(22)) // overwrite, should keep position

	if got := root.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("expected order [b a], got %v", got)
	}
	child, ok := root.Get("b")
	if !ok || child.Scalar != 22 {
		t.Fatalf("expected overwritten value 22, got %v ok=%v", child, ok)
	}
}

func TestRemoveDetachesChild(t *testing.T) {
	root := NewSection()
	leaf := NewLeaf("x")
	root.Put("k", leaf)

	removed, ok := root.Remove("k")
	if !ok || removed != leaf {
		t.Fatalf("expected to remove leaf")
	}
	if _, ok := removed.Parent(); ok {
		t.Fatal("expected removed child to have no parent")
	}
	if root.Len() != 0 {
		t.Fatalf("expected empty section, got len %d", root.Len())
	}
}

func TestGetCreateSectionViaRoute(t *testing.T) {
	root := NewSection()
	r := route.MustNew("a", "b", "c")
	sec := CreateSection(root, r)
	sec.Put("leaf", NewLeaf(1))

	got, ok := Get(root, r.Add("leaf"))
	if !ok || got.Scalar != 1 {
		t.Fatalf("expected leaf value 1 via route, got %v ok=%v", got, ok)
	}
}

func TestSetCreatesIntermediateSections(t *testing.T) {
	root := NewSection()
	r := route.MustNew("x", "y", "z")
	Set(root, r, NewLeaf("v"))

	got, ok := Get(root, r)
	if !ok || got.Scalar != "v" {
		t.Fatalf("expected value v, got %v ok=%v", got, ok)
	}
	x, _ := root.Get("x")
	if !x.IsSection() {
		t.Fatal("expected intermediate x to be a section")
	}
}

func TestPruneEmptyAncestors(t *testing.T) {
	root := NewSection()
	r := route.MustNew("a", "b", "c")
	Set(root, r, NewLeaf(1))

	rParent, _ := r.Parent()
	parent, ok := Get(root, rParent)
	if !ok {
		t.Fatal("expected parent section")
	}
	parent.Remove("c")
	PruneEmptyAncestors(parent)

	if _, ok := root.Get("a"); ok {
		t.Fatal("expected empty ancestor chain to be pruned up to root")
	}
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	root := NewSection()
	root.Put("a", NewLeaf([]any{1, 2, 3}))
	cp := root.Clone()

	a, _ := cp.Get("a")
	list := a.Scalar.([]any)
	list[0] = 99

	origA, _ := root.Get("a")
	if origA.Scalar.([]any)[0] == 99 {
		t.Fatal("expected clone to be deep-copied, original mutated")
	}
	if !cp.IsRoot() {
		t.Fatal("expected clone to be detached (root)")
	}
}

func TestLeafIsNotSection(t *testing.T) {
	leaf := NewLeaf(1)
	if leaf.IsSection() {
		t.Fatal("expected leaf to not be a section")
	}
}
