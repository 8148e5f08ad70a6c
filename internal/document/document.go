// Package document implements an abstract document tree: Sections (ordered
// mappings of key to Block) and Leaf Blocks, each carrying comments and
// per-node flags. Serialization to and from a concrete text format (YAML)
// is delegated to internal/yamldoc; this package knows nothing about text.
package document

import "github.com/oriys/boostyaml/internal/route"

// Comments holds the before/inline/after comment text attached to a node,
// split between its key position and its value position — mirroring how a
// block-style YAML mapping entry can carry comments on both the key line
// and the value.
type Comments struct {
	KeyBefore, KeyInline, KeyAfter       string
	ValueBefore, ValueInline, ValueAfter string
}

// Block is the single node type of a document tree. A Block is a Section
// when its Children map is non-nil (an ordered mapping from key to child
// Block); otherwise it is a leaf wrapping a scalar, sequence, or opaque
// serialized map in Scalar.
//
// Keep is transient: the Updater sets it per run from the resolved user
// version's keep-route set, and the Merger consults (but never persists)
// it. Ignored is persistent: callers set it directly on the Block to
// request permanent preservation across updates.
type Block struct {
	Comments Comments
	Keep     bool
	Ignored  bool

	Scalar any // leaf payload; meaningless when Children != nil

	parent      *Block
	keyInParent any

	order    []any
	children map[any]*Block
}

// NewLeaf returns a new, parentless leaf Block wrapping value.
func NewLeaf(value any) *Block {
	return &Block{Scalar: value}
}

// SetScalar replaces b's value with v, converting b to a leaf if it was
// previously a Section (its children are discarded). Value and custom
// mappers use this rather than assigning Scalar directly so a mapper that
// replaces a section's value can never leave a Block in the inconsistent
// state of having both a non-nil Scalar and non-nil children.
func (b *Block) SetScalar(v any) {
	b.Scalar = v
	b.children = nil
	b.order = nil
}

// NewSection returns a new, parentless, empty Section Block.
func NewSection() *Block {
	return &Block{children: make(map[any]*Block)}
}

// IsSection reports whether b is a Section (as opposed to a leaf).
func (b *Block) IsSection() bool { return b.children != nil }

// IsRoot reports whether b has no parent.
func (b *Block) IsRoot() bool { return b.parent == nil }

// Parent returns b's owning Section, and false if b is root.
func (b *Block) Parent() (*Block, bool) {
	if b.parent == nil {
		return nil, false
	}
	return b.parent, true
}

// KeyInParent returns the key under which b is stored in its parent, and
// false if b is root.
func (b *Block) KeyInParent() (any, bool) {
	if b.parent == nil {
		return nil, false
	}
	return b.keyInParent, true
}

// Keys returns a copy of this Section's keys in insertion order. It panics
// if b is not a Section.
func (b *Block) Keys() []any {
	b.requireSection()
	cp := make([]any, len(b.order))
	copy(cp, b.order)
	return cp
}

// Len returns the number of direct children. It panics if b is not a Section.
func (b *Block) Len() int {
	b.requireSection()
	return len(b.order)
}

// Get returns the child stored at key, and whether it exists. It panics if
// b is not a Section.
func (b *Block) Get(key any) (*Block, bool) {
	b.requireSection()
	c, ok := b.children[key]
	return c, ok
}

// Put stores child under key, overwriting (but preserving insertion
// position of) any existing entry, and sets child's parent linkage. It
// panics if b is not a Section.
func (b *Block) Put(key any, child *Block) {
	b.requireSection()
	if _, exists := b.children[key]; !exists {
		b.order = append(b.order, key)
	}
	child.parent = b
	child.keyInParent = key
	b.children[key] = child
}

// Remove detaches and returns the child at key, clearing its parent
// linkage. It panics if b is not a Section.
func (b *Block) Remove(key any) (*Block, bool) {
	b.requireSection()
	child, ok := b.children[key]
	if !ok {
		return nil, false
	}
	delete(b.children, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	child.parent = nil
	child.keyInParent = nil
	return child, true
}

func (b *Block) requireSection() {
	if b.children == nil {
		panic("document: operation requires a Section, got a leaf Block")
	}
}

// Clone returns a deep copy of b, detached from any parent.
func (b *Block) Clone() *Block {
	cp := &Block{Comments: b.Comments, Keep: b.Keep, Ignored: b.Ignored}
	if b.IsSection() {
		cp.children = make(map[any]*Block, len(b.children))
		cp.order = make([]any, len(b.order))
		copy(cp.order, b.order)
		for k, child := range b.children {
			childCopy := child.Clone()
			childCopy.parent = cp
			childCopy.keyInParent = k
			cp.children[k] = childCopy
		}
	} else {
		cp.Scalar = cloneScalar(b.Scalar)
	}
	return cp
}

func cloneScalar(v any) any {
	switch t := v.(type) {
	case []any:
		cp := make([]any, len(t))
		copy(cp, t)
		return cp
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, val := range t {
			cp[k] = val
		}
		return cp
	default:
		return v
	}
}

// Get walks root down the Route, returning the Block found there and
// whether the full route resolved (every intermediate node being a
// Section). Route.Last() need not itself be a Section.
func Get(root *Block, r route.Route) (*Block, bool) {
	cur := root
	for i := 0; i < r.Len(); i++ {
		if !cur.IsSection() {
			return nil, false
		}
		child, ok := cur.Get(r.Key(i))
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

// CreateSection walks root down the Route, creating empty Section Blocks at
// every level that does not yet exist (including the final key), and
// returns the Section at r. It panics if an existing node along the path is
// a leaf (a value already occupies a key that must be a Section).
func CreateSection(root *Block, r route.Route) *Block {
	cur := root
	for i := 0; i < r.Len(); i++ {
		key := r.Key(i)
		if !cur.IsSection() {
			panic("document: CreateSection path passes through a leaf Block")
		}
		child, ok := cur.Get(key)
		if !ok {
			child = NewSection()
			cur.Put(key, child)
		} else if !child.IsSection() {
			panic("document: CreateSection path passes through a leaf Block")
		}
		cur = child
	}
	return cur
}

// Set walks root down r.Parent() (creating intermediate Sections as
// needed) and stores child at r.Last(), overwriting any existing entry.
func Set(root *Block, r route.Route, child *Block) {
	if r.Len() == 1 {
		root.Put(r.Last(), child)
		return
	}
	parentRoute, _ := r.Parent()
	parent := CreateSection(root, parentRoute)
	parent.Put(r.Last(), child)
}

// PruneEmptyAncestors walks upward from start (typically the Section a
// child was just removed from), removing start and then each ancestor
// Section that has become empty from its parent, stopping at root or at the
// first non-empty Section.
func PruneEmptyAncestors(start *Block) {
	cur := start
	for cur != nil && cur.IsSection() && cur.Len() == 0 {
		parent, ok := cur.Parent()
		if !ok {
			return
		}
		key, _ := cur.KeyInParent()
		parent.Remove(key)
		cur = parent
	}
}
