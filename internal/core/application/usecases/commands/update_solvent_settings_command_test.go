package commands_test

import (
	"testing"

	"platetrack/internal/core/application/usecases/commands"
	"platetrack/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateSolventSettingsCommand_ValidInput(t *testing.T) {
	costPerSquareMeter := 500.0
	patch := ledger.SettingsPatch{CostPerSquareMeter: &costPerSquareMeter}

	cmd, err := commands.NewUpdateSolventSettingsCommand(patch)

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	require.NotNil(t, cmd.Patch().CostPerSquareMeter)
	assert.InDelta(t, 500.0, *cmd.Patch().CostPerSquareMeter, 0.001)
}

func TestNewUpdateSolventSettingsCommand_EmptyPatch(t *testing.T) {
	cmd, err := commands.NewUpdateSolventSettingsCommand(ledger.SettingsPatch{})

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Nil(t, cmd.Patch().CostPerBarrel)
	assert.Nil(t, cmd.Patch().RecyclingRate)
}

func TestUpdateSolventSettingsCommand_ValidateZeroValue(t *testing.T) {
	cmd := commands.UpdateSolventSettingsCommand{}

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrUpdateSolventSettingsCommandIsNotConstructed)
}
