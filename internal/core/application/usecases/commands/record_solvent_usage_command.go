package commands

import (
	"errors"
	"fmt"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/pkg/guard"
)

var ErrRecordSolventUsageCommandIsNotConstructed = errors.New(
	"RecordSolventUsageCommand must be created via NewRecordSolventUsageCommand constructor",
)

// RecordSolventUsageCommand represents a manual correction: authorized staff
// record solvent consumption for an order directly, bypassing the washout
// trigger. Unlike the automatic trigger, a manual request for an order that
// already has a usage event is rejected, not treated as a no-op.
type RecordSolventUsageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	areaM2  float64

	guard guard.ConstructorGuard
}

// NewRecordSolventUsageCommand creates a command to record usage manually.
// The processed area must be a positive number of square meters.
func NewRecordSolventUsageCommand(orderID kernel.UUID, areaM2 float64) (RecordSolventUsageCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RecordSolventUsageCommand{}, err
	}

	if areaM2 <= 0 {
		return RecordSolventUsageCommand{}, fmt.Errorf(
			"%w: area %v m² is not greater than 0", ledger.ErrInvalidQuantity, areaM2)
	}

	return RecordSolventUsageCommand{
		orderID: orderID,
		areaM2:  areaM2,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordSolventUsageCommand) Validate() error {
	return c.guard.Validate(ErrRecordSolventUsageCommandIsNotConstructed)
}

// OrderID returns the order the consumption belongs to.
func (c RecordSolventUsageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AreaM2 returns the processed area in square meters.
func (c RecordSolventUsageCommand) AreaM2() float64 {
	return c.areaM2
}
