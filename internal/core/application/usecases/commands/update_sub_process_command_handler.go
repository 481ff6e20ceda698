package commands

import (
	"context"
	"errors"
	"time"

	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/core/domain/model/order"
	"platetrack/internal/pkg/errs"
)

// UpdateSubProcessResult carries the outcome of a sub-process update.
//
// Warning is set when solvent metering could not fully succeed but the
// workflow update itself was committed: workflow progress is never blocked by
// inventory bookkeeping. An overdrawn ledger is the typical case.
type UpdateSubProcessResult struct {
	Order      *order.Order
	UsageEvent *ledger.UsageEvent
	Warning    string
}

// UpdateSubProcessCommandHandler handles the business logic for sub-process
// updates, including the workflow's single side-effecting rule: completing
// the washout sub-process of an order with declared geometry meters solvent
// usage exactly once.
//
// Example:
//
//	handler := NewUpdateSubProcessCommandHandler(uowFactory)
//	cmd, _ := NewUpdateSubProcessCommand(orderID, order.SubProcessWashout, order.SubProcessCompleted)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("sub-process update failed: %w", err)
//	}
//	if result.Warning != "" {
//	    // surface to the operator, the update itself succeeded
//	}
type UpdateSubProcessCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateSubProcessCommandHandler creates a handler for sub-process updates.
// Requires a UoWFactory spanning both the order and ledger aggregates.
func NewUpdateSubProcessCommandHandler(uowFactory UoWFactory) UpdateSubProcessCommandHandler {
	return UpdateSubProcessCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sub-process update command.
//
// The order mutation and any ledger mutation commit in one transaction.
// Domain-level metering failures (missing ledger, degenerate geometry) do not
// roll back the workflow update; they are reported via the result's Warning.
// The usage-recorded latch guarantees that toggling a sub-process
// Completed -> Pending -> Completed never creates a second usage event.
func (h *UpdateSubProcessCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateSubProcessCommand,
) (UpdateSubProcessResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateSubProcessResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateSubProcessResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateSubProcessResult{}, err
	}

	now := time.Now()
	if err = aggregate.UpdateSubProcess(cmd.Name(), cmd.Status(), now); err != nil {
		return UpdateSubProcessResult{}, err
	}

	result := UpdateSubProcessResult{Order: aggregate}

	if h.isConsumptionTrigger(cmd, aggregate) {
		event, warning, meterErr := h.meterUsage(ctx, uow, aggregate, now)
		if meterErr != nil {
			return UpdateSubProcessResult{}, meterErr
		}
		result.UsageEvent = event
		result.Warning = warning
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return UpdateSubProcessResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateSubProcessResult{}, err
	}

	return result, nil
}

// isConsumptionTrigger reports whether this update must meter solvent usage:
// washout completed, geometry declared, and no event recorded yet.
func (h *UpdateSubProcessCommandHandler) isConsumptionTrigger(
	cmd UpdateSubProcessCommand,
	aggregate *order.Order,
) bool {
	return cmd.Name() == order.SubProcessWashout &&
		cmd.Status() == order.SubProcessCompleted &&
		aggregate.NeedsUsageRecording()
}

// meterUsage records solvent consumption for the order inside the current
// transaction. Domain-level failures are converted into a warning string;
// infrastructure failures are returned as errors and abort the transaction.
func (h *UpdateSubProcessCommandHandler) meterUsage(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	now time.Time,
) (*ledger.UsageEvent, string, error) {
	ledgerRepo := uow.LedgerRepository()

	// A previously recorded event makes the trigger an idempotent no-op.
	existing, err := ledgerRepo.GetUsageEventByOrder(ctx, aggregate.ID())
	if err == nil {
		aggregate.MarkUsageRecorded()
		return existing, "", nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, "", err
	}

	stock, err := ledgerRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, "solvent usage not recorded: ledger is not initialized", nil
		}
		return nil, "", err
	}

	event, usageErr := stock.RecordUsage(aggregate.ID(), aggregate.Dimensions().AreaM2(), now)
	if usageErr != nil && !errors.Is(usageErr, ledger.ErrInsufficientInventory) {
		return nil, "solvent usage not recorded: " + usageErr.Error(), nil
	}

	if err = ledgerRepo.AddUsageEvent(ctx, event); err != nil {
		return nil, "", err
	}

	if err = ledgerRepo.Save(ctx, stock); err != nil {
		return nil, "", err
	}

	aggregate.MarkUsageRecorded()

	var warning string
	if usageErr != nil {
		warning = usageErr.Error()
	}
	return event, warning, nil
}
