package commands

import (
	"context"
	"time"

	"platetrack/internal/core/domain/model/order"
)

// CompletePrepressCommandHandler confirms the prepress stage of an order.
// Fails with order.ErrPrepressIncomplete while sub-processes remain pending.
// The order's top-level status is not advanced: moving to ReadyForDelivery is
// a separate manager action via SetOrderStatusCommand.
type CompletePrepressCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompletePrepressCommandHandler creates a handler for prepress confirmation.
func NewCompletePrepressCommandHandler(uowFactory OrderUoWFactory) CompletePrepressCommandHandler {
	return CompletePrepressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the prepress completion command.
// Returns the updated order on success.
func (h *CompletePrepressCommandHandler) Handle(
	ctx context.Context,
	cmd CompletePrepressCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.CompletePrepress(time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
