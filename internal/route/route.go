// Package route implements the immutable key-path abstraction used across
// the migration core: an ordered sequence of keys identifying a node in a
// document tree.
package route

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyRoute is returned when a Route would be constructed with zero keys.
var ErrEmptyRoute = errors.New("route: must have at least one key")

// ErrNullKey is returned when a Route would be constructed with a nil key.
var ErrNullKey = errors.New("route: key must not be nil")

// Route is an immutable, ordered sequence of keys identifying a node in a
// document tree. Keys are typically strings but may be any comparable
// primitive (int, bool, float64) depending on the document's key format.
type Route struct {
	keys []any
}

// New builds a Route from one or more keys. It returns ErrEmptyRoute if no
// keys are given and ErrNullKey if any key is nil.
func New(keys ...any) (Route, error) {
	if len(keys) == 0 {
		return Route{}, ErrEmptyRoute
	}
	cp := make([]any, len(keys))
	for i, k := range keys {
		if k == nil {
			return Route{}, ErrNullKey
		}
		cp[i] = k
	}
	return Route{keys: cp}, nil
}

// MustNew is like New but panics on error. Intended for constructing
// Routes from compile-time-known literals (settings construction, tests).
func MustNew(keys ...any) Route {
	r, err := New(keys...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of keys in the Route.
func (r Route) Len() int {
	return len(r.keys)
}

// Key returns the key at index i.
func (r Route) Key(i int) any {
	return r.keys[i]
}

// Last returns the final key in the Route — the key-in-parent of the node
// the Route identifies.
func (r Route) Last() any {
	return r.keys[len(r.keys)-1]
}

// Parent returns the Route to this Route's parent node. It is only defined
// when Len() >= 2; ok is false otherwise.
func (r Route) Parent() (Route, bool) {
	if len(r.keys) < 2 {
		return Route{}, false
	}
	return Route{keys: r.keys[:len(r.keys)-1]}, true
}

// Add returns a new Route with k appended as the final key.
func (r Route) Add(k any) Route {
	cp := make([]any, len(r.keys)+1)
	copy(cp, r.keys)
	cp[len(r.keys)] = k
	return Route{keys: cp}
}

// Join returns the string form of the Route: each key formatted with %v and
// joined by sep. No key may contain sep, or the result will not round-trip
// through Split.
func (r Route) Join(sep string) string {
	parts := make([]string, len(r.keys))
	for i, k := range r.keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, sep)
}

// Split parses a separator-joined route string back into a Route. Every key
// is treated as a string; callers needing non-string keys should build the
// Route with New directly instead of round-tripping through Split.
func Split(s, sep string) (Route, error) {
	parts := strings.Split(s, sep)
	keys := make([]any, len(parts))
	for i, p := range parts {
		keys[i] = p
	}
	return New(keys...)
}

// Equal reports whether r and other name the same ordered sequence of keys.
func (r Route) Equal(other Route) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i := range r.keys {
		if r.keys[i] != other.keys[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer using "." as the default separator, purely
// for debugging and log output; callers needing a specific separator must
// use Join.
func (r Route) String() string {
	return r.Join(".")
}
