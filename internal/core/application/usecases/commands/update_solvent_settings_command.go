package commands

import (
	"errors"

	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/pkg/guard"
)

var ErrUpdateSolventSettingsCommandIsNotConstructed = errors.New(
	"UpdateSolventSettingsCommand must be created via NewUpdateSolventSettingsCommand constructor",
)

// UpdateSolventSettingsCommand represents a partial update of the ledger's
// cost and consumption parameters. Unset fields are left unchanged; the merged
// result is validated against the loaded ledger before persisting.
type UpdateSolventSettingsCommand struct { //nolint:recvcheck //using for validation
	patch ledger.SettingsPatch

	guard guard.ConstructorGuard
}

// NewUpdateSolventSettingsCommand creates a command carrying a settings patch.
// Field-level validation (negative costs, recycling rate bounds) happens when
// the patch is merged into the ledger, so an invalid patch never partially applies.
func NewUpdateSolventSettingsCommand(patch ledger.SettingsPatch) (UpdateSolventSettingsCommand, error) {
	return UpdateSolventSettingsCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSolventSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSolventSettingsCommandIsNotConstructed)
}

// Patch returns the partial settings update.
func (c UpdateSolventSettingsCommand) Patch() ledger.SettingsPatch {
	return c.patch
}
