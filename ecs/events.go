package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// BodyEventKind identifies physics lifecycle events.
type BodyEventKind string

const (
	BodyEventBound   BodyEventKind = "bound"
	BodyEventRemoved BodyEventKind = "removed"
)

// BodyEvent is pushed when an entity's body is created or removed.
type BodyEvent struct {
	Entity Entity
	Kind   BodyEventKind
	Handle uint64
}

// EventQueue is a simple FIFO queue, cleared at the end of every scheduler
// frame.
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

// Peek returns the queued events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := make([]Event, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
