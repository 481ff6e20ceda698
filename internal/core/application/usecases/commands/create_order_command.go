package commands

import (
	"errors"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/order"
	"platetrack/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new production order.
// Carries the workflow template selection and, when known at submission time,
// the plate dimensions used later for solvent metering.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	dims, _ := order.NewDimensions(50, 70, 2, 1)
//	cmd, err := NewCreateOrderCommand(orderID, order.TemplateStandard, &dims)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	templateID order.TemplateID
	dimensions *order.Dimensions

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new production order.
// Validates the order ID and template; dimensions are optional and may be nil
// when the plate geometry is not yet known.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	templateID order.TemplateID,
	dimensions *order.Dimensions,
) (CreateOrderCommand, error) {
	createCommand := CreateOrderCommand{
		dimensions: dimensions,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		createCommand.setOrderID(orderID),
		createCommand.setTemplateID(templateID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return createCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TemplateID returns the selected workflow template.
func (c CreateOrderCommand) TemplateID() order.TemplateID {
	return c.templateID
}

// Dimensions returns the plate dimensions, or nil when not provided.
func (c CreateOrderCommand) Dimensions() *order.Dimensions {
	return c.dimensions
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTemplateID(templateID order.TemplateID) error {
	if _, err := order.TemplateByID(templateID); err != nil {
		return err
	}

	c.templateID = templateID
	return nil
}
