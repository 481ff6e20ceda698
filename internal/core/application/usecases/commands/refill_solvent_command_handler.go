package commands

import (
	"context"

	"platetrack/internal/core/domain/model/ledger"
)

// RefillSolventCommandHandler adds barrels to the shared solvent stock.
// The refill is serialized against concurrent usage recordings through the
// ledger row's optimistic version check.
type RefillSolventCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewRefillSolventCommandHandler creates a handler for solvent refills.
func NewRefillSolventCommandHandler(uowFactory LedgerUoWFactory) RefillSolventCommandHandler {
	return RefillSolventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refill command.
// Returns the updated ledger on success.
func (h *RefillSolventCommandHandler) Handle(
	ctx context.Context,
	cmd RefillSolventCommand,
) (*ledger.Ledger, error) {
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

	ledgerRepo := uow.LedgerRepository()
	stock, err := ledgerRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err = stock.Refill(cmd.BarrelCount()); err != nil {
		return nil, err
	}

	if err = ledgerRepo.Save(ctx, stock); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stock, nil
}
