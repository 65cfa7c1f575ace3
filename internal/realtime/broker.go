// Package realtime is the in-process change feed: every successful table
// write publishes an event, and any open page (SSE stream) subscribes to the
// tables it lists. Subscriptions are scoped to the subscriber and must be
// closed on teardown.
package realtime

import "sync"

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event describes one row change. UserID is set for rows owned by a single
// user (notifications) so per-user streams can filter.
type Event struct {
	Table  string    `json:"table"`
	Type   EventType `json:"type"`
	RowID  string    `json:"row_id"`
	UserID string    `json:"user_id,omitempty"`
}

// Subscription delivers matching events on C until Close is called.
type Subscription struct {
	C chan Event

	broker *Broker
	id     int
	table  string
	types  map[EventType]bool
}

// Close detaches the subscription. Events already buffered remain readable;
// C is closed once detached.
func (s *Subscription) Close() {
	if s.broker != nil {
		s.broker.unsubscribe(s.id)
	}
}

func (s *Subscription) matches(ev Event) bool {
	if ev.Table != s.table {
		return false
	}
	if len(s.types) == 0 {
		return true
	}
	return s.types[ev.Type]
}

// Broker fans out change events to table subscriptions. Publish never blocks:
// a subscriber that cannot keep up loses events, and its page re-fetches on
// the next one it does receive.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]*Subscription
	nextID int
}

func NewBroker() *Broker {
	return &Broker{subs: map[int]*Subscription{}}
}

// Subscribe registers interest in changes to one table. With no explicit
// types every event type matches.
func (b *Broker) Subscribe(table string, types ...EventType) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, 16),
		broker: b,
		table:  table,
		types:  map[EventType]bool{},
	}
	for _, t := range types {
		sub.types[t] = true
	}

	b.mu.Lock()
	b.nextID++
	sub.id = b.nextID
	b.subs[sub.id] = sub
	b.mu.Unlock()
	return sub
}

func (b *Broker) unsubscribe(id int) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()
	if ok {
		close(sub.C)
	}
}

// Publish delivers ev to every matching subscription without blocking.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if !sub.matches(ev) {
			continue
		}
		select {
		case sub.C <- ev:
		default:
		}
	}
}
