package update

import (
	"sync"
	"sync/atomic"

	"github.com/oriys/boostyaml/internal/document"
)

// Result is a snapshot of one Updater.Update call's outcome.
type Result struct {
	Applied bool
	Err     error
}

// Store holds the live migrated document and the result of the last update
// applied to it, readable without locking by concurrent pollers (e.g.
// internal/watch) while a single writer goroutine owns mutation: an
// atomic.Value for hot reads paired with a mutex serializing writers.
type Store struct {
	mu      sync.Mutex
	current atomic.Value // stores *document.Block
	last    atomic.Value // stores Result
}

// NewStore returns a Store seeded with the given document.
func NewStore(doc *document.Block) *Store {
	s := &Store{}
	s.current.Store(doc)
	s.last.Store(Result{})
	return s
}

// Current returns the live document.
func (s *Store) Current() *document.Block {
	return s.current.Load().(*document.Block)
}

// LastResult returns the outcome of the most recent Apply call.
func (s *Store) LastResult() Result {
	return s.last.Load().(Result)
}

// Apply runs updater against the Store's current document and defaults,
// serializing concurrent callers so only one update pipeline runs at a
// time, and publishes both the (possibly unchanged) document and the run's
// Result for lock-free readers.
func (s *Store) Apply(updater *Updater, defaults *document.Block) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Current()
	applied, err := updater.Update(doc, defaults)
	s.current.Store(doc)
	s.last.Store(Result{Applied: applied, Err: err})
	return applied, err
}
