package document

// ReplaceWith grafts other's content onto b in place: b keeps its own
// identity (and its parent/key-in-parent linkage, if any) but its comments,
// flags, and children become other's. This lets a recursive tree-building
// pass (e.g. the Merger) hand back a freshly built result tree that the
// caller then grafts onto the document the caller's references still point
// to, rather than forcing every caller to re-resolve a new root pointer.
func (b *Block) ReplaceWith(other *Block) {
	b.Comments = other.Comments
	b.Keep = other.Keep
	b.Ignored = other.Ignored
	b.Scalar = other.Scalar
	if other.IsSection() {
		b.children = other.children
		b.order = other.order
		for _, child := range b.children {
			child.parent = b
		}
	} else {
		b.children = nil
		b.order = nil
	}
}
