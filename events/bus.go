package events

import "sync"

// EventType identifies different types of events
type EventType string

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// Handler is a function that processes events
type Handler func(Event)

// Subscription identifies one registered handler so it can be removed
type Subscription struct {
	eventType EventType
	id        uint64
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatches. Handlers run synchronously
// on the emitting goroutine in subscription order.
type Bus struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[EventType][]subscriber
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[EventType][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber{id: b.nextID, handler: handler})
	return Subscription{eventType: eventType, id: b.nextID}
}

// Unsubscribe removes a handler registered by Subscribe
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers, exists := b.subscribers[sub.eventType]
	if !exists {
		return
	}

	kept := make([]subscriber, 0, len(handlers))
	for _, h := range handlers {
		if h.id != sub.id {
			kept = append(kept, h)
		}
	}

	if len(kept) == 0 {
		delete(b.subscribers, sub.eventType)
	} else {
		b.subscribers[sub.eventType] = kept
	}
}

// Emit dispatches an event to all subscribed handlers. A nil bus drops the
// event.
func (b *Bus) Emit(event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := append([]subscriber(nil), b.subscribers[event.Type()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}
