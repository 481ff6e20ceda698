package ledger

import (
	"errors"
	"time"

	"platetrack/internal/core/domain/model/kernel"
)

// ErrDuplicateUsage is returned when a usage event already exists for an order.
// Usage is metered at most once per order for its lifetime.
var ErrDuplicateUsage = errors.New("duplicate usage")

// UsageEvent is an immutable, append-only record of solvent consumed by one
// order. At most one event exists per order for the order's lifetime; the
// repository enforces this with a unique index and callers with the order's
// usage-recorded latch.
//
// Events are never updated or deleted. Corrections are modeled by operators
// refilling or adjusting settings, not by rewriting history.
type UsageEvent struct {
	id             kernel.UUID
	orderID        kernel.UUID
	areaM2         float64
	litersConsumed float64
	costIncurred   float64
	recordedAt     time.Time
}

// NewUsageEvent creates a usage event with a fresh identifier.
// Intended to be called by Ledger.RecordUsage only.
func NewUsageEvent(
	orderID kernel.UUID,
	areaM2 float64,
	litersConsumed float64,
	costIncurred float64,
	recordedAt time.Time,
) (*UsageEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &UsageEvent{
		id:             kernel.NewUUID(),
		orderID:        orderID,
		areaM2:         areaM2,
		litersConsumed: litersConsumed,
		costIncurred:   costIncurred,
		recordedAt:     recordedAt,
	}, nil
}

// RestoreUsageEvent reconstructs a usage event from persistence.
func RestoreUsageEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	areaM2 float64,
	litersConsumed float64,
	costIncurred float64,
	recordedAt time.Time,
) (*UsageEvent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &UsageEvent{
		id:             id,
		orderID:        orderID,
		areaM2:         areaM2,
		litersConsumed: litersConsumed,
		costIncurred:   costIncurred,
		recordedAt:     recordedAt,
	}, nil
}

// ID returns the event's unique identifier.
func (e *UsageEvent) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this consumption belongs to.
func (e *UsageEvent) OrderID() kernel.UUID {
	return e.orderID
}

// AreaM2 returns the processed plate area in square meters.
func (e *UsageEvent) AreaM2() float64 {
	return e.areaM2
}

// LitersConsumed returns the solvent volume deducted from the ledger.
func (e *UsageEvent) LitersConsumed() float64 {
	return e.litersConsumed
}

// CostIncurred returns the processing cost attributed to the order.
func (e *UsageEvent) CostIncurred() float64 {
	return e.costIncurred
}

// RecordedAt returns when the consumption was metered.
func (e *UsageEvent) RecordedAt() time.Time {
	return e.recordedAt
}
