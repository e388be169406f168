package sqlite

// This file implements the change notifier behind observable queries.
// Every table mutation notifies subscribers of that table, who re-run
// their query and converge without manual cache invalidation.

// Subscription delivers a signal on C after each mutation of any of the
// subscribed tables. Signals are coalesced: a slow consumer sees at least
// one signal for any burst of mutations. C is closed when the subscription
// is cancelled or the store closes.
type Subscription struct {
	C      <-chan struct{}
	store  *Store
	ch     chan struct{}
	tables []string
}

// Subscribe registers a watcher for the given tables. The caller must
// Cancel the subscription when done.
func (s *Store) Subscribe(tables ...string) *Subscription {
	ch := make(chan struct{}, 1)
	sub := &Subscription{C: ch, store: s, ch: ch, tables: tables}

	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, table := range tables {
		s.watchers[table] = append(s.watchers[table], ch)
	}
	return sub
}

// Cancel removes the subscription and closes its channel. Cancel is
// idempotent.
func (sub *Subscription) Cancel() {
	s := sub.store
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	removed := false
	for _, table := range sub.tables {
		chans := s.watchers[table]
		for i, ch := range chans {
			if ch == sub.ch {
				s.watchers[table] = append(chans[:i], chans[i+1:]...)
				removed = true
				break
			}
		}
	}
	if removed {
		close(sub.ch)
	}
	sub.tables = nil
}

// notify signals all subscribers of a table. Sends are non-blocking; a
// pending signal already covers the new mutation.
func (s *Store) notify(table string) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, ch := range s.watchers[table] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
