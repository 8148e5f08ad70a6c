// Package versioning implements the two ways an Updater resolves the
// (user, defaults) version pair it needs to gate and walk the migration
// pipeline.
package versioning

import (
	"errors"
	"fmt"

	"github.com/oriys/boostyaml/internal/document"
	"github.com/oriys/boostyaml/internal/route"
	"github.com/oriys/boostyaml/internal/version"
)

// ErrMissingDefaultsVersion is returned by Automatic when the defaults
// document has no string value at the version Route. A defaults id that is
// present but does not parse is reported instead as a wrapped
// version.ErrUnparseable, under both strategies.
var ErrMissingDefaultsVersion = errors.New("versioning: defaults document has no parseable version id")

// Strategy supplies the (user, defaults) Version pair an Updater needs.
type Strategy interface {
	// GetVersion reads the version for doc. isDefaults selects which
	// side's recovery rules apply on a missing/unparseable id.
	GetVersion(doc *document.Block, isDefaults bool) (*version.Version, error)
	// UpdateVersionID persists the resolved defaults version id back into
	// the user document. Manual strategies no-op; Automatic strategies
	// write it to their configured Route.
	UpdateVersionID(user *document.Block, defaults *version.Version) error
}

// Manual is a Strategy where the caller supplies the version ids directly
// rather than having them read from the document.
type Manual struct {
	Pattern    *version.Pattern
	UserID     *string // nil => absent => first_version
	DefaultsID string
}

// GetVersion implements Strategy. For isDefaults, DefaultsID must parse.
// For the user side, a nil UserID uses Pattern.FirstVersion(); a non-nil
// but unparseable UserID is a hard error — only *absence* recovers, since an
// id that was actually supplied but fails to parse is not "missing".
func (m Manual) GetVersion(_ *document.Block, isDefaults bool) (*version.Version, error) {
	if isDefaults {
		v, err := m.Pattern.GetVersion(m.DefaultsID)
		if err != nil {
			return nil, fmt.Errorf("versioning: defaults id %q: %w", m.DefaultsID, err)
		}
		return v, nil
	}
	if m.UserID == nil {
		return m.Pattern.FirstVersion(), nil
	}
	v, err := m.Pattern.GetVersion(*m.UserID)
	if err != nil {
		return nil, fmt.Errorf("versioning: user id %q: %w", *m.UserID, err)
	}
	return v, nil
}

// UpdateVersionID implements Strategy: a no-op for Manual versioning.
func (m Manual) UpdateVersionID(*document.Block, *version.Version) error { return nil }

// Automatic is a Strategy that reads the version string from the document
// itself at a configured Route, and writes the new version id back there
// after a successful update.
type Automatic struct {
	Pattern *version.Pattern
	Route   route.Route
}

// GetVersion implements Strategy. For isDefaults, a missing or unparseable
// value is a fatal error. For the user side, both a missing value and an
// unparseable one recover to Pattern.FirstVersion() — unlike Manual, where
// only absence (not a value's parse failure) recovers.
func (a Automatic) GetVersion(doc *document.Block, isDefaults bool) (*version.Version, error) {
	block, ok := document.Get(doc, a.Route)
	if !ok || block.IsSection() {
		if isDefaults {
			return nil, ErrMissingDefaultsVersion
		}
		return a.Pattern.FirstVersion(), nil
	}
	s, ok := block.Scalar.(string)
	if !ok {
		if isDefaults {
			return nil, ErrMissingDefaultsVersion
		}
		return a.Pattern.FirstVersion(), nil
	}
	v, err := a.Pattern.GetVersion(s)
	if err != nil {
		if isDefaults {
			return nil, fmt.Errorf("versioning: defaults id %q: %w", s, err)
		}
		return a.Pattern.FirstVersion(), nil
	}
	return v, nil
}

// UpdateVersionID implements Strategy: writes defaults' rendered id back
// into user at the configured Route, creating intermediate sections if
// needed.
func (a Automatic) UpdateVersionID(user *document.Block, defaults *version.Version) error {
	document.Set(user, a.Route, document.NewLeaf(defaults.ID()))
	return nil
}
