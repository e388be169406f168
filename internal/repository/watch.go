package repository

import (
	"github.com/walidkhalla/mealplanner/internal/sqlite"
)

// Watch is an observable query: C signals after each mutation of the
// watched tables, and Load re-runs the query. The query's parameters
// (including the user id) are fixed when the watch is created.
type Watch[T any] struct {
	// C delivers a coalesced signal per burst of mutations. It is closed
	// when the watch is cancelled or the store closes.
	C <-chan struct{}

	sub  *sqlite.Subscription
	load func() (T, error)
}

func newWatch[T any](store *sqlite.Store, load func() (T, error), tables ...string) *Watch[T] {
	sub := store.Subscribe(tables...)
	return &Watch[T]{C: sub.C, sub: sub, load: load}
}

// Load runs the query and returns the current result.
func (w *Watch[T]) Load() (T, error) {
	return w.load()
}

// Cancel stops the watch. Cancel is idempotent.
func (w *Watch[T]) Cancel() {
	w.sub.Cancel()
}
