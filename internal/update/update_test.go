package update

import (
	"strings"
	"testing"

	"github.com/oriys/boostyaml/internal/document"
	"github.com/oriys/boostyaml/internal/merge"
	"github.com/oriys/boostyaml/internal/relocate"
	"github.com/oriys/boostyaml/internal/route"
	"github.com/oriys/boostyaml/internal/transform"
	"github.com/oriys/boostyaml/internal/version"
	"github.com/oriys/boostyaml/internal/versioning"
)

func dottedPattern(t *testing.T) *version.Pattern {
	t.Helper()
	major, err := version.NewRange(1, 10, 1, 0)
	if err != nil {
		t.Fatalf("major range: %v", err)
	}
	dot, err := version.NewLiteral(".")
	if err != nil {
		t.Fatalf("dot literal: %v", err)
	}
	minor, err := version.NewRange(0, 10, 1, 0)
	if err != nil {
		t.Fatalf("minor range: %v", err)
	}
	p, err := version.NewPattern(major, dot, minor)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	return p
}

// TestUpdaterEndToEnd exercises the full pipeline: a relocation, two
// mappers, and a final merge, across a multi-version walk.
func TestUpdaterEndToEnd(t *testing.T) {
	pattern := dottedPattern(t)

	user := document.NewSection()
	user.Put("a", document.NewLeaf("1.2"))
	user.Put("y", document.NewLeaf(true))
	z := document.NewSection()
	z.Put("a", document.NewLeaf(1))
	z.Put("b", document.NewLeaf(15))
	user.Put("z", z)
	user.Put("o", document.NewLeaf("a: b"))
	user.Put("p", document.NewLeaf(50))

	defaults := document.NewSection()
	defaults.Put("a", document.NewLeaf("2.3"))
	defaults.Put("y", document.NewLeaf(false))
	s := document.NewSection()
	s.Put("a", document.NewLeaf(5))
	s.Put("b", document.NewLeaf(10))
	defaults.Put("s", s)
	defaults.Put("m", document.NewLeaf("a: c"))
	defaults.Put("r", document.NewLeaf(20))
	defaults.Put("t", document.NewLeaf(100))

	relocations := relocate.Table{
		"1.3": {{From: route.MustNew("z", "a"), To: route.MustNew("r")}},
		"2.3": {
			{From: route.MustNew("o"), To: route.MustNew("m")},
			{From: route.MustNew("z"), To: route.MustNew("s")},
		},
	}
	mappers := transform.MapperTable{
		"1.5": {{Route: route.MustNew("r"), Mapper: transform.Mapper{Section: func(containing *document.Block, at route.Route) any {
			b, _ := containing.Get(at.Last())
			if b.Scalar.(int) > 0 {
				return "+"
			}
			return "else"
		}}}},
		"2.3": {{Route: route.MustNew("m"), Mapper: transform.Mapper{Value: func(old any) any {
			return strings.Index(old.(string), ":")
		}}}},
	}

	settings := Settings{
		Versioning:  versioning.Automatic{Pattern: pattern, Route: route.MustNew("a")},
		Relocations: relocations,
		Mappers:     mappers,
		MergeRules:  merge.Rules{MappingAtMapping: true, MappingAtSection: true, SectionAtMapping: true},
		SortPolicy:  merge.SortDefaultsOrder,
	}
	u := New(settings)

	applied, err := u.Update(user, defaults)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !applied {
		t.Fatal("expected the update to apply")
	}

	if user.Len() != 6 {
		t.Fatalf("expected 6 top-level keys, got %d: %v", user.Len(), user.Keys())
	}
	checkLeaf(t, user, "a", "2.3")
	checkLeaf(t, user, "y", true)
	checkLeaf(t, user, "m", 1)
	checkLeaf(t, user, "r", "+")
	checkLeaf(t, user, "t", 100)

	sOut, ok := user.Get("s")
	if !ok || !sOut.IsSection() || sOut.Len() != 2 {
		t.Fatalf("expected section s with 2 children, got %v ok=%v", sOut, ok)
	}
	checkLeaf(t, sOut, "a", 5)
	checkLeaf(t, sOut, "b", 15)
}

func checkLeaf(t *testing.T, sec *document.Block, key string, want any) {
	t.Helper()
	b, ok := sec.Get(key)
	if !ok {
		t.Fatalf("expected key %q present", key)
	}
	if b.Scalar != want {
		t.Fatalf("key %q = %v, want %v", key, b.Scalar, want)
	}
}

func TestUpdaterNoOpWhenAlreadyCurrent(t *testing.T) {
	pattern := dottedPattern(t)
	user := document.NewSection()
	user.Put("a", document.NewLeaf("2.3"))
	defaults := document.NewSection()
	defaults.Put("a", document.NewLeaf("2.3"))

	settings := Settings{
		Versioning: versioning.Automatic{Pattern: pattern, Route: route.MustNew("a")},
		MergeRules: merge.Rules{MappingAtMapping: true},
	}
	applied, err := New(settings).Update(user, defaults)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if applied {
		t.Fatal("expected no-op when user is already at defaults version")
	}
}

func TestUpdaterDowngradeRefused(t *testing.T) {
	pattern := dottedPattern(t)
	user := document.NewSection()
	user.Put("a", document.NewLeaf("2.3"))
	defaults := document.NewSection()
	defaults.Put("a", document.NewLeaf("1.2"))

	settings := Settings{
		Versioning: versioning.Automatic{Pattern: pattern, Route: route.MustNew("a")},
		MergeRules: merge.Rules{MappingAtMapping: true},
	}
	_, err := New(settings).Update(user, defaults)
	if err != ErrDowngradeRefused {
		t.Fatalf("expected ErrDowngradeRefused, got %v", err)
	}
}

func TestUpdaterDowngradeAllowedIsNoOp(t *testing.T) {
	pattern := dottedPattern(t)
	user := document.NewSection()
	user.Put("a", document.NewLeaf("2.3"))
	defaults := document.NewSection()
	defaults.Put("a", document.NewLeaf("1.2"))

	settings := Settings{
		Versioning:        versioning.Automatic{Pattern: pattern, Route: route.MustNew("a")},
		EnableDowngrading: true,
		MergeRules:        merge.Rules{MappingAtMapping: true},
	}
	applied, err := New(settings).Update(user, defaults)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if applied {
		t.Fatal("expected downgrade-allowed path to no-op, not apply")
	}
}

func TestUpdaterKeepRoutesRetainUserOnlyKeys(t *testing.T) {
	pattern := dottedPattern(t)
	user := document.NewSection()
	user.Put("a", document.NewLeaf("1.0"))
	user.Put("secret", document.NewLeaf("shh"))
	defaults := document.NewSection()
	defaults.Put("a", document.NewLeaf("1.1"))

	settings := Settings{
		Versioning: versioning.Automatic{Pattern: pattern, Route: route.MustNew("a")},
		KeepRoutes: map[string][]route.Route{"1.0": {route.MustNew("secret")}},
		MergeRules: merge.Rules{MappingAtMapping: true},
	}
	applied, err := New(settings).Update(user, defaults)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !applied {
		t.Fatal("expected update to apply")
	}
	if _, ok := user.Get("secret"); !ok {
		t.Fatal("expected keep-routes to retain a user-only key through the merge")
	}
}

func TestUpdaterNoVersioningJustMerges(t *testing.T) {
	user := document.NewSection()
	user.Put("x", document.NewLeaf(1))
	defaults := document.NewSection()
	defaults.Put("x", document.NewLeaf(2))
	defaults.Put("y", document.NewLeaf(3))

	settings := Settings{MergeRules: merge.Rules{MappingAtMapping: true}}
	applied, err := New(settings).Update(user, defaults)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !applied {
		t.Fatal("expected applied=true for an unversioned merge")
	}
	checkLeaf(t, user, "x", 1)
	checkLeaf(t, user, "y", 3)
}
