package commands

import (
	"context"
)

// AssignDriverCommandHandler records the first-accept assignment of a driver.
// Two drivers racing for the same order are serialized by the repository: the
// loser's transaction sees driver_assigned and fails with an invalid transition.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	if err = o.AssignDriver(cmd.DriverID(), cmd.At()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
