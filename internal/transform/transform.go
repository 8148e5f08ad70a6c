// Package transform implements per-version, user-supplied value mappers and
// custom logic: transformations applied to the document tree immediately
// after that version's relocations, in the same ascending walk.
package transform

import (
	"github.com/oriys/boostyaml/internal/document"
	"github.com/oriys/boostyaml/internal/route"
)

// ValueMapper transforms a leaf's existing value into its replacement.
type ValueMapper func(old any) any

// SectionMapper transforms a value given the Section that contains it and
// the full Route to it — for mappers that need surrounding context (e.g.
// reading a sibling key) rather than just the old value in isolation.
type SectionMapper func(containing *document.Block, at route.Route) any

// Mapper is exactly one of Value or Section set; the other must be nil.
type Mapper struct {
	Value   ValueMapper
	Section SectionMapper
}

// MapperEntry pairs a Route with the Mapper to apply there.
type MapperEntry struct {
	Route  route.Route
	Mapper Mapper
}

// MapperTable maps a version id to its ordered list of mapper entries.
type MapperTable map[string][]MapperEntry

// CustomLogicFn is an arbitrary caller-supplied document mutation.
type CustomLogicFn func(root *document.Block)

// CustomLogicTable maps a version id to its ordered list of custom logic
// functions.
type CustomLogicTable map[string][]CustomLogicFn

// ApplyMappers runs every mapper entry for one version, in slice order. A
// mapper whose route has no value in root is a no-op — it must never
// create the key.
func ApplyMappers(root *document.Block, entries []MapperEntry) {
	for _, e := range entries {
		applyOne(root, e.Route, e.Mapper)
	}
}

func applyOne(root *document.Block, at route.Route, m Mapper) {
	block, ok := document.Get(root, at)
	if !ok {
		return
	}
	switch {
	case m.Value != nil:
		block.SetScalar(m.Value(block.Scalar))
	case m.Section != nil:
		parent, ok := block.Parent()
		if !ok {
			return
		}
		block.SetScalar(m.Section(parent, at))
	}
}

// RunCustomLogic runs every custom logic function for one version, in
// slice order.
func RunCustomLogic(root *document.Block, fns []CustomLogicFn) {
	for _, fn := range fns {
		fn(root)
	}
}
