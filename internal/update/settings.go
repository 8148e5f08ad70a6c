// Package update implements the orchestrator that ties the Versioning
// Strategy, Relocator, Mappers, Custom Logic, and Merger together into a
// single document migration pass.
package update

import (
	"errors"

	"github.com/oriys/boostyaml/internal/merge"
	"github.com/oriys/boostyaml/internal/relocate"
	"github.com/oriys/boostyaml/internal/route"
	"github.com/oriys/boostyaml/internal/transform"
	"github.com/oriys/boostyaml/internal/versioning"
)

// ErrDowngradeRefused is returned when the user document's version is newer
// than the defaults document's version and EnableDowngrading is false.
var ErrDowngradeRefused = errors.New("update: user version is newer than defaults version and downgrading is disabled")

// Settings is the full set of knobs an embedding application can set on an
// Updater.
type Settings struct {
	// Versioning resolves the (user, defaults) version pair. A nil
	// Versioning means "no version gating" — Update runs a single Merge
	// and nothing else.
	Versioning versioning.Strategy

	// EnableDowngrading, when true, turns a user-version-ahead-of-defaults
	// situation into a silent no-op instead of ErrDowngradeRefused.
	EnableDowngrading bool

	// KeepAll, when true, marks every block in the user document as kept
	// before the pipeline runs, so the Merger retains every user-only key
	// regardless of route or Ignored flag. KeepRoutes is still honored
	// alongside it, but is redundant once KeepAll is set.
	KeepAll bool

	// KeepRoutes maps a version id to a set of Routes. Only the entry for
	// the resolved user version is used: its Routes have their Keep flag
	// set once, before the pipeline walk starts, so the Merger retains
	// those user-only keys even without an explicit Ignored flag on the
	// Block itself.
	KeepRoutes map[string][]route.Route

	// Relocations is the per-version relocation table driving the
	// Relocator step of the walk.
	Relocations relocate.Table

	// Mappers is the per-version value/section mapper table.
	Mappers transform.MapperTable

	// CustomLogic is the per-version arbitrary mutation table.
	CustomLogic transform.CustomLogicTable

	// MergeRules is the rule matrix passed to the final Merge call.
	MergeRules merge.Rules

	// SortPolicy controls the final Merge call's output key order.
	SortPolicy merge.SortPolicy

	// AutoSave, when non-nil, is invoked after a successful versioned
	// migration so the caller can persist the mutated user document (e.g.
	// serialize and write it back to disk). It is never called on a no-op
	// update, nor after the single Merge run when Versioning is nil.
	AutoSave func() error
}
