package shared

import "context"

// EventHandler reacts to published domain events, e.g. by notifying staff
// of a new order
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types to receive; empty means all
	EventTypes() []string
}

// EventPublisher is what services depend on to announce saved changes
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus delivers published events to subscribed handlers in the
// background. Stop drains the queue before returning.
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
