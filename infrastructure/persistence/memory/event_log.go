package memory

import (
	"sync"

	"notehub-backend/domain/webhook"
)

// DefaultEventLogCapacity bounds the webhook event log unless overridden
const DefaultEventLogCapacity = 20

// EventLog is a fixed-capacity, insertion-ordered ring buffer of the most
// recent webhook events. When full, appending evicts the oldest entry.
// Entries are never mutated after insertion.
type EventLog struct {
	mu       sync.RWMutex
	events   []*webhook.Event
	capacity int
	start    int
	size     int
	evicted  uint64
}

// NewEventLog creates an event log with the given capacity.
// Non-positive capacities fall back to the default.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultEventLogCapacity
	}
	return &EventLog{
		events:   make([]*webhook.Event, capacity),
		capacity: capacity,
	}
}

// Append adds an event to the end of the log, evicting the oldest entry
// when the log is at capacity.
func (l *EventLog) Append(event *webhook.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size == l.capacity {
		l.events[l.start] = event
		l.start = (l.start + 1) % l.capacity
		l.evicted++
		return
	}

	l.events[(l.start+l.size)%l.capacity] = event
	l.size++
}

// List returns the logged events newest-first
func (l *EventLog) List() []*webhook.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*webhook.Event, l.size)
	for i := 0; i < l.size; i++ {
		// walk backwards from the most recent entry
		out[i] = l.events[(l.start+l.size-1-i+l.capacity)%l.capacity]
	}
	return out
}

// Size returns the number of retained events
func (l *EventLog) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Evicted returns how many events have been dropped since startup
func (l *EventLog) Evicted() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.evicted
}
