package commands

import (
	"context"

	"printdelivery/internal/core/domain/model/location"
	"printdelivery/internal/core/ports"
)

// ChooseLocationCommandHandler resolves the chosen point and remembers it in
// the caller's session.
type ChooseLocationCommandHandler struct {
	index    *location.Index
	sessions ports.SessionStore
}

func NewChooseLocationCommandHandler(index *location.Index, sessions ports.SessionStore) ChooseLocationCommandHandler {
	return ChooseLocationCommandHandler{
		index:    index,
		sessions: sessions,
	}
}

// Handle returns the chosen point. Unknown ids fail with errs.ErrObjectNotFound
// and leave the session unchanged.
func (h ChooseLocationCommandHandler) Handle(_ context.Context, cmd ChooseLocationCommand) (location.FixedLocation, error) {
	if err := cmd.Validate(); err != nil {
		return location.FixedLocation{}, err
	}
	return h.index.Choose(h.sessions.Session(cmd.SessionID()), cmd.LocationID())
}
