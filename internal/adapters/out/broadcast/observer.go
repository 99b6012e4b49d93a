package broadcast

import (
	"printdelivery/internal/core/domain/model/dispatch"
)

// FuncObserver adapts a function to ports.Observer.
type FuncObserver struct {
	ID string
	Fn func(ev dispatch.Event) error
}

func (o FuncObserver) ObserverID() string {
	return o.ID
}

func (o FuncObserver) Deliver(ev dispatch.Event) error {
	return o.Fn(ev)
}
