// Package merge implements a deep reconciliation of a user document against
// a defaults document under a configurable per-node-kind rule matrix, with
// comment preservation and optional sorting to defaults order.
package merge

import "github.com/oriys/boostyaml/internal/document"

// Rules is the three-boolean rule matrix. Each field answers "keep
// user" (true) or "take defaults" (false) for one mixed-kind collision.
type Rules struct {
	// MappingAtMapping governs both-leaves collisions at the same route.
	MappingAtMapping bool
	// MappingAtSection governs a user leaf where defaults has a section.
	MappingAtSection bool
	// SectionAtMapping governs a user section where defaults has a leaf.
	SectionAtMapping bool
}

// SortPolicy controls the iteration order used to decide output key order.
type SortPolicy int

const (
	// SortDefaultsOrder iterates defaults' keys first, then appends any
	// user-only keys at the tail.
	SortDefaultsOrder SortPolicy = iota
	// SortNone iterates user's keys first (retaining their order), then
	// appends any defaults-only keys at the tail.
	SortNone
)

// Merge deep-reconciles user against defaults under rules and sortPolicy,
// returning a freshly built result tree. Callers wanting to graft the
// result onto an existing, already-referenced document node (the common
// case — the Updater keeps the caller's *document.Block for "user" alive)
// use Block.ReplaceWith to do so without invalidating existing references.
func Merge(user, defaults *document.Block, rules Rules, sortPolicy SortPolicy) *document.Block {
	return mergeSections(user, defaults, rules, sortPolicy)
}

func mergeSections(user, defaults *document.Block, rules Rules, sortPolicy SortPolicy) *document.Block {
	result := document.NewSection()
	result.Comments = user.Comments
	result.Keep = user.Keep
	result.Ignored = user.Ignored

	for _, key := range orderedKeys(user, defaults, sortPolicy) {
		uChild, uOk := user.Get(key)
		dChild, dOk := defaults.Get(key)

		switch {
		case uOk && dOk:
			if merged := mergeNode(uChild, dChild, rules, sortPolicy); merged != nil {
				result.Put(key, merged)
			}
		case uOk && !dOk:
			if uChild.Keep || uChild.Ignored {
				result.Put(key, uChild)
			}
			// else: dropped — present in user only, not kept/ignored.
		case !uOk && dOk:
			result.Put(key, dChild.Clone())
		}
	}
	return result
}

func mergeNode(u, d *document.Block, rules Rules, sortPolicy SortPolicy) *document.Block {
	switch {
	case u.IsSection() && d.IsSection():
		return mergeSections(u, d, rules, sortPolicy)
	case !u.IsSection() && !d.IsSection():
		return mergeLeaves(u, d, rules.MappingAtMapping)
	case !u.IsSection() && d.IsSection():
		if rules.MappingAtSection {
			return u
		}
		return d.Clone()
	default: // u.IsSection() && !d.IsSection()
		if rules.SectionAtMapping {
			return u
		}
		return d.Clone()
	}
}

func mergeLeaves(u, d *document.Block, keepUser bool) *document.Block {
	if keepUser {
		if isEmpty(u.Comments) {
			u.Comments = d.Comments
		}
		return u
	}
	cloned := d.Clone()
	return cloned
}

func isEmpty(c document.Comments) bool {
	return c.KeyBefore == "" && c.KeyInline == "" && c.KeyAfter == "" &&
		c.ValueBefore == "" && c.ValueInline == "" && c.ValueAfter == ""
}

func orderedKeys(user, defaults *document.Block, sortPolicy SortPolicy) []any {
	seen := make(map[any]bool)
	var out []any
	add := func(keys []any) {
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	if sortPolicy == SortDefaultsOrder {
		add(defaults.Keys())
		add(user.Keys())
	} else {
		add(user.Keys())
		add(defaults.Keys())
	}
	return out
}
