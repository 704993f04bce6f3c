package repository

import "sync"

// Event is a bitmask of row-level change kinds a subscriber cares about.
type Event int

const (
	EventInsert Event = 1 << iota
	EventUpdate
	EventDelete
)

// EventAll matches every change kind.
const EventAll = EventInsert | EventUpdate | EventDelete

// Change describes a single row-level change on a table.
type Change struct {
	Table string
	Event Event
}

// Subscription is the handle returned by Subscribe; pass it back to
// Unsubscribe to stop delivery.
type Subscription struct {
	id    int64
	table string
	mask  Event
	fn    func(Change)
}

// notifier fans row-level changes out to subscribers. Delivery is
// synchronous: publish returns once every matching callback has run.
type notifier struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]*Subscription
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int64]*Subscription)}
}

func (n *notifier) subscribe(table string, mask Event, fn func(Change)) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	sub := &Subscription{id: n.nextID, table: table, mask: mask, fn: fn}
	n.subs[sub.id] = sub
	return sub
}

// unsubscribe is idempotent; removing an already-removed handle is a no-op.
func (n *notifier) unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, sub.id)
}

func (n *notifier) publish(change Change) {
	n.mu.RLock()
	matched := make([]*Subscription, 0, len(n.subs))
	for _, sub := range n.subs {
		if sub.table == change.Table && sub.mask&change.Event != 0 {
			matched = append(matched, sub)
		}
	}
	n.mu.RUnlock()

	// Run callbacks outside the lock so a subscriber may unsubscribe itself.
	for _, sub := range matched {
		sub.fn(change)
	}
}
