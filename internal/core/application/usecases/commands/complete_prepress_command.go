package commands

import (
	"errors"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/pkg/guard"
)

var ErrCompletePrepressCommandIsNotConstructed = errors.New(
	"CompletePrepressCommand must be created via NewCompletePrepressCommand constructor",
)

// CompletePrepressCommand represents a request to confirm an order's prepress
// stage is finished. The confirmation is rejected while any sub-process is
// still pending.
type CompletePrepressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePrepressCommand creates a command to confirm prepress completion.
func NewCompletePrepressCommand(orderID kernel.UUID) (CompletePrepressCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompletePrepressCommand{}, err
	}

	return CompletePrepressCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePrepressCommand) Validate() error {
	return c.guard.Validate(ErrCompletePrepressCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c CompletePrepressCommand) OrderID() kernel.UUID {
	return c.orderID
}
