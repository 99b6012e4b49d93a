package commands

import (
	"errors"
	"strings"

	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

var ErrChooseLocationCommandIsNotConstructed = errors.New(
	"ChooseLocationCommand must be created via NewChooseLocationCommand constructor",
)

// ChooseLocationCommand records that a caller picked a fixed delivery point, so
// later searches in the same session list it first.
type ChooseLocationCommand struct { //nolint:recvcheck //using for validation
	sessionID  string
	locationID string

	guard guard.ConstructorGuard
}

func NewChooseLocationCommand(sessionID, locationID string) (ChooseLocationCommand, error) {
	cmd := ChooseLocationCommand{
		sessionID:  strings.TrimSpace(sessionID),
		locationID: strings.TrimSpace(locationID),
		guard:      guard.NewConstructorGuard(),
	}

	var err error
	if cmd.sessionID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("sessionID"))
	}
	if cmd.locationID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("locationID"))
	}
	if err != nil {
		return ChooseLocationCommand{}, err
	}

	return cmd, nil
}

func (c ChooseLocationCommand) Validate() error {
	return c.guard.Validate(ErrChooseLocationCommandIsNotConstructed)
}

func (c ChooseLocationCommand) SessionID() string {
	return c.sessionID
}

func (c ChooseLocationCommand) LocationID() string {
	return c.locationID
}
