package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/pkg/errs"
)

// RecordSolventUsageResult carries the outcome of a manual usage recording.
// Warning is set when the deduction overdrew the stock; the event is recorded
// regardless.
type RecordSolventUsageResult struct {
	UsageEvent *ledger.UsageEvent
	Warning    string
}

// RecordSolventUsageCommandHandler records solvent consumption for an order
// on explicit staff request. The order's usage-recorded latch is set in the
// same transaction so the washout trigger never double-charges the order.
//
// Duplicate manual requests fail with ledger.ErrDuplicateUsage.
type RecordSolventUsageCommandHandler struct {
	uowFactory UoWFactory
}

// NewRecordSolventUsageCommandHandler creates a handler for manual usage recording.
func NewRecordSolventUsageCommandHandler(uowFactory UoWFactory) RecordSolventUsageCommandHandler {
	return RecordSolventUsageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual usage recording command.
func (h *RecordSolventUsageCommandHandler) Handle(
	ctx context.Context,
	cmd RecordSolventUsageCommand,
) (RecordSolventUsageResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordSolventUsageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecordSolventUsageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return RecordSolventUsageResult{}, err
	}

	ledgerRepo := uow.LedgerRepository()
	if _, err = ledgerRepo.GetUsageEventByOrder(ctx, cmd.OrderID()); err == nil {
		return RecordSolventUsageResult{}, fmt.Errorf(
			"%w: order %s already has a usage event", ledger.ErrDuplicateUsage, cmd.OrderID())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return RecordSolventUsageResult{}, err
	}

	stock, err := ledgerRepo.Get(ctx)
	if err != nil {
		return RecordSolventUsageResult{}, err
	}

	event, usageErr := stock.RecordUsage(cmd.OrderID(), cmd.AreaM2(), time.Now())
	if usageErr != nil && !errors.Is(usageErr, ledger.ErrInsufficientInventory) {
		return RecordSolventUsageResult{}, usageErr
	}

	if err = ledgerRepo.AddUsageEvent(ctx, event); err != nil {
		return RecordSolventUsageResult{}, err
	}

	if err = ledgerRepo.Save(ctx, stock); err != nil {
		return RecordSolventUsageResult{}, err
	}

	aggregate.MarkUsageRecorded()
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return RecordSolventUsageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordSolventUsageResult{}, err
	}

	result := RecordSolventUsageResult{UsageEvent: event}
	if usageErr != nil {
		result.Warning = usageErr.Error()
	}
	return result, nil
}
