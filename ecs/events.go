package ecs

// EventKind names a gameplay event.
type EventKind string

const (
	EventCoinCollected EventKind = "coin"
	EventEnemyStomped  EventKind = "stomp"
	EventPlayerHurt    EventKind = "hurt"
	EventFlagReached   EventKind = "win"
)

// Event is emitted by gameplay handlers and consumed outside the simulation
// (sound, logging).
type Event struct {
	Kind   EventKind
	Entity Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
