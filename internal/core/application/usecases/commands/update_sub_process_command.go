package commands

import (
	"errors"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/order"
	"platetrack/internal/pkg/guard"
)

var (
	ErrUpdateSubProcessCommandIsNotConstructed = errors.New(
		"UpdateSubProcessCommand must be created via NewUpdateSubProcessCommand constructor",
	)
	ErrSubProcessNameIsRequired = errors.New("sub-process name is required")
)

// UpdateSubProcessCommand represents a request to set the status of one
// prepress sub-process of an order. Completing the washout sub-process is the
// workflow's consumption trigger: the handler meters solvent usage for the
// order exactly once.
//
// Example:
//
//	orderID, _ := kernel.UUIDFromString(raw)
//	cmd, err := NewUpdateSubProcessCommand(orderID, order.SubProcessWashout, order.SubProcessCompleted)
//	if err != nil {
//	    return fmt.Errorf("invalid sub-process update: %w", err)
//	}
//
//	handler := NewUpdateSubProcessCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
type UpdateSubProcessCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	name    string
	status  order.SubProcessStatus

	guard guard.ConstructorGuard
}

// NewUpdateSubProcessCommand creates a command to update a sub-process status.
// Validates that the order ID is valid, the name is not empty, and the status
// is one of Pending/Completed. Returns an error if any validation fails.
func NewUpdateSubProcessCommand(
	orderID kernel.UUID,
	name string,
	status order.SubProcessStatus,
) (UpdateSubProcessCommand, error) {
	cmd := UpdateSubProcessCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setName(name),
		cmd.setStatus(status),
	); err != nil {
		return UpdateSubProcessCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSubProcessCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSubProcessCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateSubProcessCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Name returns the sub-process name.
func (c UpdateSubProcessCommand) Name() string {
	return c.name
}

// Status returns the requested sub-process status.
func (c UpdateSubProcessCommand) Status() order.SubProcessStatus {
	return c.status
}

func (c *UpdateSubProcessCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateSubProcessCommand) setName(name string) error {
	if name == "" {
		return ErrSubProcessNameIsRequired
	}

	c.name = name
	return nil
}

func (c *UpdateSubProcessCommand) setStatus(status order.SubProcessStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
