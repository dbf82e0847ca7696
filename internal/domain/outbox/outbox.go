// Package outbox defines the event publication ports the application layer
// uses to announce domain events such as order placement.
package outbox

import "context"

// Event is a domain event that knows its own routing name, e.g.
// "order.placed".
type Event interface {
	EventName() string
}

// Handler reacts to a delivered event.
type Handler func(ctx context.Context, e Event) error

// Publisher hands an event off for delivery. Implementations decide whether
// delivery is in-process or over a broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber attaches a handler to every event carrying the given name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
