package commands

import (
	"errors"
	"fmt"

	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/pkg/guard"
)

var ErrRefillSolventCommandIsNotConstructed = errors.New(
	"RefillSolventCommand must be created via NewRefillSolventCommand constructor",
)

// RefillSolventCommand represents a request to add barrels to the solvent stock.
//
// Example:
//
//	cmd, err := NewRefillSolventCommand(3)
//	if err != nil {
//	    return fmt.Errorf("invalid refill: %w", err)
//	}
//	lgr, err := handler.Handle(ctx, cmd)
type RefillSolventCommand struct { //nolint:recvcheck //using for validation
	barrelCount int

	guard guard.ConstructorGuard
}

// NewRefillSolventCommand creates a command to refill the solvent stock.
// The barrel count must be a positive integer.
func NewRefillSolventCommand(barrelCount int) (RefillSolventCommand, error) {
	if barrelCount <= 0 {
		return RefillSolventCommand{}, fmt.Errorf(
			"%w: barrel count %d is not greater than 0", ledger.ErrInvalidQuantity, barrelCount)
	}

	return RefillSolventCommand{
		barrelCount: barrelCount,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefillSolventCommand) Validate() error {
	return c.guard.Validate(ErrRefillSolventCommandIsNotConstructed)
}

// BarrelCount returns the number of barrels to add.
func (c RefillSolventCommand) BarrelCount() int {
	return c.barrelCount
}
