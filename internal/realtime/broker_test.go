package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversToMatchingTable(t *testing.T) {
	b := NewBroker()
	trips := b.Subscribe("bus_trips")
	defer trips.Close()
	notifs := b.Subscribe("notifications")
	defer notifs.Close()

	b.Publish(Event{Table: "bus_trips", Type: EventInsert, RowID: "t1"})

	select {
	case ev := <-trips.C:
		assert.Equal(t, "bus_trips", ev.Table)
		assert.Equal(t, EventInsert, ev.Type)
		assert.Equal(t, "t1", ev.RowID)
	default:
		t.Fatal("expected event on bus_trips subscription")
	}

	select {
	case ev := <-notifs.C:
		t.Fatalf("unexpected event on notifications subscription: %+v", ev)
	default:
	}
}

func TestBrokerEventTypeFilter(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe("bookings", EventUpdate)
	defer sub.Close()

	b.Publish(Event{Table: "bookings", Type: EventInsert, RowID: "b1"})
	b.Publish(Event{Table: "bookings", Type: EventUpdate, RowID: "b2"})

	ev := <-sub.C
	assert.Equal(t, "b2", ev.RowID)
	assert.Empty(t, sub.C)
}

func TestBrokerCloseStopsDelivery(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe("reviews")
	sub.Close()

	// publishing after close must not panic or deliver
	b.Publish(Event{Table: "reviews", Type: EventDelete, RowID: "r1"})

	_, open := <-sub.C
	require.False(t, open, "channel should be closed after Close")
}

func TestBrokerSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe("payments")
	defer sub.Close()

	for i := 0; i < 100; i++ {
		b.Publish(Event{Table: "payments", Type: EventInsert, RowID: "p"})
	}
	// buffer is 16, the rest are dropped; Publish must have returned
	require.Len(t, sub.C, 16)
}
