package commands

import (
	"context"

	"platetrack/internal/core/domain/model/ledger"
)

// UpdateSolventSettingsCommandHandler merges a settings patch into the ledger.
// Invalid patches fail with ledger.ErrInvalidSetting and leave the stored
// settings unchanged.
type UpdateSolventSettingsCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewUpdateSolventSettingsCommandHandler creates a handler for settings updates.
func NewUpdateSolventSettingsCommandHandler(uowFactory LedgerUoWFactory) UpdateSolventSettingsCommandHandler {
	return UpdateSolventSettingsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the settings update command.
// Returns the updated ledger on success.
func (h *UpdateSolventSettingsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateSolventSettingsCommand,
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

	if err = stock.ApplySettings(cmd.Patch()); err != nil {
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
