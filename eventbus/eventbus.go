// Package eventbus is a generic pub/sub fan-out used to decouple the
// connector's connection-state transitions and the hamster package's
// line-tracer completion edges from their independent consumers: the
// optional telemetry logger and the optional monitoring dashboard
// (spec §4.8).
//
// Adapted from the teacher's shared/event_bus package: string-keyed
// event types, uuid-identified subscribers, handlers invoked
// asynchronously per publish.
package eventbus

import (
	"roboid/shared/data_structures"

	"github.com/google/uuid"
)

// Event types published by the core runtime.
const (
	TypeConnectionStateChanged = "connection_state_changed"
	TypeLineTracerCompleted    = "line_tracer_completed"
)

// Event is the generic envelope carried over the bus. Data holds one of
// the typed payload structs published by connector/hamster (e.g.
// connector.ConnectionStateChanged).
type Event struct {
	Type string
	Data any
}

// New constructs an Event for Publish.
func New(eventType string, data any) Event {
	return Event{Type: eventType, Data: data}
}

// Handler processes one published event. Handlers run in their own
// goroutine per publish, matching the teacher's "go handler(event)"
// dispatch, so a slow subscriber never blocks the publisher.
type Handler func(Event)

// Bus is a thread-safe, string-keyed pub/sub fan-out.
type Bus struct {
	subscriptions *data_structures.SafeMap[string, *data_structures.SafeMap[string, struct{}]]
	handlers      *data_structures.SafeMap[string, Handler]
}

// NewBus constructs an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subscriptions: data_structures.NewSafeMap[string, *data_structures.SafeMap[string, struct{}]](),
		handlers:      data_structures.NewSafeMap[string, Handler](),
	}
}

// Subscribe registers handler for eventType and returns a subscription
// id usable with Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	id := uuid.New().String()
	b.handlers.Set(id, handler)

	set := b.subscriptions.GetOrDefault(eventType, data_structures.NewSafeMap[string, struct{}]())
	set.Set(id, struct{}{})
	b.subscriptions.Set(eventType, set)
	return id
}

// Unsubscribe removes a subscriber from an event type. No-op if id was
// never subscribed.
func (b *Bus) Unsubscribe(eventType, id string) {
	if set, ok := b.subscriptions.Get(eventType); ok {
		set.Delete(id)
	}
	b.handlers.Delete(id)
}

// Publish fans event out to every subscriber of its type, each in its
// own goroutine. No-op if there are no subscribers.
func (b *Bus) Publish(event Event) {
	set, ok := b.subscriptions.Get(event.Type)
	if !ok {
		return
	}
	for _, id := range set.GetKeys() {
		if handler, ok := b.handlers.Get(id); ok {
			go handler(event)
		}
	}
}
