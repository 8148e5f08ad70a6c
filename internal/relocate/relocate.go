// Package relocate implements walking a user document from one version past
// another, moving blocks between routes according to a per-version
// relocation set, correctly handling target chains and cycles and pruning
// emptied ancestor sections.
package relocate

import (
	"fmt"

	"github.com/oriys/boostyaml/internal/document"
	"github.com/oriys/boostyaml/internal/route"
	"github.com/oriys/boostyaml/internal/version"
)

// Relocation is a single (from → to) route pair attached to a version id.
type Relocation struct {
	From route.Route
	To   route.Route
}

// Table maps a version id to its ordered list of relocations. A slice, not
// a map, so that callers control iteration order — that order is part of
// the observable contract, not an implementation detail.
type Table map[string][]Relocation

// Run walks root from user+1 through defaults inclusive, applying each
// version's relocation set in turn. It is the standalone, whole-range
// convenience entry point; the orchestrator in internal/update instead
// calls ApplyVersion once per step so it can interleave mappers and custom
// logic between relocation steps of the same walk.
func Run(root *document.Block, user, defaults *version.Version, table Table) error {
	cur := user.Copy()
	cur.Next()
	for {
		cmp, err := cur.Compare(defaults)
		if err != nil {
			return fmt.Errorf("relocate: %w", err)
		}
		if cmp > 0 {
			return nil
		}
		if relocs, ok := table[cur.ID()]; ok {
			ApplyVersion(root, relocs)
		}
		cur.Next()
	}
}

// pending tracks one relocation pair's consumption state during a single
// version's processing, so the chain/cycle recursion below can detect
// "already handled by an earlier step in this version".
type pending struct {
	from     route.Route
	to       route.Route
	consumed bool
}

// ApplyVersion applies one version's relocation set to root, in the given
// slice order, handling target chains and cycles.
func ApplyVersion(root *document.Block, relocs []Relocation) {
	bySource := make(map[string]*pending, len(relocs))
	order := make([]string, 0, len(relocs))
	for _, r := range relocs {
		key := routeKey(r.From)
		if _, exists := bySource[key]; exists {
			// Later duplicate "from" in the same version's list; keep the
			// first and ignore the rest, matching "a map from Route to
			// Route" semantics (one target per source per version).
			continue
		}
		bySource[key] = &pending{from: r.From, to: r.To}
		order = append(order, key)
	}
	for _, key := range order {
		processPair(root, key, bySource)
	}
}

func processPair(root *document.Block, fromKey string, bySource map[string]*pending) {
	p, ok := bySource[fromKey]
	if !ok || p.consumed {
		return // step 1: no longer present (or not present at all)
	}

	parent, ok := parentOf(root, p.from)
	if !ok {
		p.consumed = true
		return
	}
	lastKey := p.from.Last()
	block, ok := parent.Get(lastKey)
	if !ok {
		p.consumed = true
		return
	}

	p.consumed = true
	parent.Remove(lastKey)
	document.PruneEmptyAncestors(parent)

	processPair(root, routeKey(p.to), bySource)

	document.Set(root, p.to, block)
}

func parentOf(root *document.Block, r route.Route) (*document.Block, bool) {
	if r.Len() == 1 {
		return root, true
	}
	parentRoute, _ := r.Parent()
	parent, ok := document.Get(root, parentRoute)
	if !ok || !parent.IsSection() {
		return nil, false
	}
	return parent, true
}

// routeKey gives a Route a comparable map-key form; Route itself holds a
// slice and so cannot key a Go map directly.
func routeKey(r route.Route) string {
	return r.Join("\x1f")
}
