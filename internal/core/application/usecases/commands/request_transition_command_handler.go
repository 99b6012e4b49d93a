package commands

import (
	"context"
)

// RequestTransitionCommandHandler applies a status change chosen by staff, the
// driver or the customer (cancel).
//
// Example:
//
//	cmd, _ := NewRequestTransitionCommand(orderID, order.StatusPrinting, time.Now())
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // someone else moved the order first; re-read and retry
//	}
type RequestTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRequestTransitionCommandHandler(uowFactory OrderUoWFactory) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, asks the state machine through the aggregate, and
// persists the accepted change. The status change is published after commit.
// Fails with *order.InvalidTransitionError when the target is not reachable,
// and with errs.ErrObjectNotFound for an unknown order.
func (h RequestTransitionCommandHandler) Handle(ctx context.Context, cmd RequestTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.TransitionTo(cmd.Target(), cmd.At()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
