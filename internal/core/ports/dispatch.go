package ports

import (
	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
)

// EventPublisher fans an event out to the observers of an order and to the
// role-wide feeds interested in it. Publish must not block on any observer.
type EventPublisher interface {
	Publish(orderID kernel.UUID, ev dispatch.Event)
}

// Observer receives events for one subscription. An error from Deliver ends
// the subscription.
type Observer interface {
	ObserverID() string
	Deliver(ev dispatch.Event) error
}

// EventSubscriber registers observers. The returned token is the only handle
// for Unsubscribe.
type EventSubscriber interface {
	Subscribe(topic dispatch.Topic, observer Observer) (kernel.UUID, error)
	Unsubscribe(token kernel.UUID) bool
}
