package bot

import "sync/atomic"

// Tracker holds the offset for the next getUpdates call: one past the
// highest update id seen so far. It never moves backward.
type Tracker struct {
	next atomic.Uint64
}

// NewTracker creates a tracker starting at initial.
func NewTracker(initial uint64) *Tracker {
	t := &Tracker{}
	t.next.Store(initial)
	return t
}

// Advance raises the offset to next if next is larger.
func (t *Tracker) Advance(next uint64) {
	for {
		cur := t.next.Load()
		if next <= cur {
			return
		}
		if t.next.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Value returns the current offset.
func (t *Tracker) Value() uint64 {
	return t.next.Load()
}
