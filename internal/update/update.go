package update

import (
	"log/slog"
	"time"

	"github.com/oriys/boostyaml/internal/document"
	"github.com/oriys/boostyaml/internal/merge"
	"github.com/oriys/boostyaml/internal/metrics"
	"github.com/oriys/boostyaml/internal/relocate"
	"github.com/oriys/boostyaml/internal/route"
	"github.com/oriys/boostyaml/internal/transform"
	"github.com/oriys/boostyaml/internal/version"
)

// Updater runs one document migration pass per call to Update, per the
// configured Settings.
type Updater struct {
	Settings Settings
}

// New returns an Updater configured with settings.
func New(settings Settings) *Updater {
	return &Updater{Settings: settings}
}

// Update migrates user in place against defaults. It reports applied=true
// if a migration pipeline actually ran (a version gap existed) or, with a
// nil Versioning, after the single Merge, and applied=false for a no-op —
// all with a nil error. An error return means the update did not complete:
// the defaults or user version could not be resolved, the user is ahead
// of defaults with downgrading disabled (ErrDowngradeRefused), writing the
// version id back failed, or AutoSave failed.
func (u *Updater) Update(user, defaults *document.Block) (applied bool, err error) {
	start := time.Now()
	defer func() {
		metrics.UpdateDuration.Observe(time.Since(start).Seconds())
		result := "noop"
		if err != nil {
			result = "error"
		} else if applied {
			result = "applied"
		}
		metrics.UpdatesTotal.WithLabelValues(result).Inc()
	}()

	s := u.Settings
	if s.Versioning == nil {
		merged := merge.Merge(user, defaults, s.MergeRules, s.SortPolicy)
		user.ReplaceWith(merged)
		slog.Info("document merged without version gating")
		return true, nil
	}

	d, err := s.Versioning.GetVersion(defaults, true)
	if err != nil {
		slog.Error("update: failed to resolve defaults version", slog.String("error", err.Error()))
		return false, err
	}
	uVer, err := s.Versioning.GetVersion(user, false)
	if err != nil {
		slog.Error("update: failed to resolve user version", slog.String("error", err.Error()))
		return false, err
	}

	cmp, err := uVer.Compare(d)
	if err != nil {
		return false, err
	}
	if cmp > 0 {
		if s.EnableDowngrading {
			slog.Warn("update: user version ahead of defaults, downgrading enabled — no-op",
				slog.String("user_version", uVer.ID()), slog.String("defaults_version", d.ID()))
			return false, nil
		}
		slog.Error("update: user version ahead of defaults, downgrading disabled",
			slog.String("user_version", uVer.ID()), slog.String("defaults_version", d.ID()))
		return false, ErrDowngradeRefused
	}
	if cmp == 0 {
		slog.Info("update: user already at defaults version", slog.String("version", uVer.ID()))
		return false, nil
	}

	markKeepFlags(user, s.KeepRoutes[uVer.ID()], s.KeepAll)

	versionsWalked := u.runPipeline(user, uVer, d, s)
	metrics.VersionsTraversed.Add(float64(versionsWalked))

	merged := merge.Merge(user, defaults, s.MergeRules, s.SortPolicy)
	metrics.MergeKeysWritten.Add(float64(countKeys(merged)))
	user.ReplaceWith(merged)

	if err := s.Versioning.UpdateVersionID(user, d); err != nil {
		return false, err
	}

	if s.AutoSave != nil {
		if err := s.AutoSave(); err != nil {
			slog.Error("update: auto-save failed", slog.String("error", err.Error()))
			return false, err
		}
	}

	slog.Info("update: migration applied",
		slog.String("from", uVer.ID()), slog.String("to", d.ID()))
	return true, nil
}

// runPipeline walks cur from user+1 through defaults inclusive, applying
// that version's relocations, mappers, and custom logic in order at each
// step — the same single ascending walk the Relocator's standalone Run
// would do alone, but interleaved here so all three per-version effects
// land before the walk advances. It returns the number of version steps
// taken.
func (u *Updater) runPipeline(user *document.Block, userVersion, defaults *version.Version, s Settings) int {
	cur := userVersion.Copy()
	steps := 0
	for {
		cur.Next()
		steps++
		cmp, err := cur.Compare(defaults)
		if err != nil {
			// Compare only fails across differing Patterns, which cannot
			// happen here since cur and defaults share userVersion's Pattern.
			break
		}
		if cmp > 0 {
			break
		}

		id := cur.ID()
		if relocs, ok := s.Relocations[id]; ok {
			relocate.ApplyVersion(user, relocs)
		}
		if mappers, ok := s.Mappers[id]; ok {
			transform.ApplyMappers(user, mappers)
		}
		if fns, ok := s.CustomLogic[id]; ok {
			transform.RunCustomLogic(user, fns)
		}
		metrics.RelocationsApplied.Add(float64(len(s.Relocations[id])))

		if cmp == 0 {
			break
		}
	}
	return steps
}

func markKeepFlags(user *document.Block, routes []route.Route, keepAll bool) {
	if keepAll {
		markKeepRecursive(user)
		return
	}
	for _, r := range routes {
		if b, ok := document.Get(user, r); ok {
			b.Keep = true
		}
	}
}

func markKeepRecursive(b *document.Block) {
	b.Keep = true
	if !b.IsSection() {
		return
	}
	for _, k := range b.Keys() {
		child, _ := b.Get(k)
		markKeepRecursive(child)
	}
}

func countKeys(b *document.Block) int {
	if !b.IsSection() {
		return 1
	}
	n := 0
	for _, k := range b.Keys() {
		child, _ := b.Get(k)
		n += countKeys(child)
	}
	return n
}
