package ledger

import (
	"errors"
	"fmt"
	"time"

	"platetrack/internal/core/domain/model/kernel"
)

var (
	// ErrLedgerIsNotConstructed is returned when a Ledger instance was not created
	// through the NewLedger or RestoreLedger factory methods.
	ErrLedgerIsNotConstructed = errors.New("Ledger must be created via NewLedger or RestoreLedger constructor")

	// ErrInvalidQuantity is returned for non-positive refill barrel counts and
	// non-positive usage areas.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientInventory signals that a usage deduction drove the current
	// volume below zero. It is a warning, not a failure: the usage is still
	// recorded, because blocking the production workflow on inventory
	// bookkeeping is worse than a temporarily negative ledger.
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// BarrelLiters is the fixed volume of one solvent barrel.
const BarrelLiters = 200.0

// Ledger is the singleton inventory record for the shared washout-solvent
// stock. One ledger exists per deployment site; it owns the barrel count, the
// current volume, and the cost/consumption parameters.
//
// Ledger follows these invariants:
//   - currentLiters never exceeds totalBarrels * BarrelLiters through refills
//   - usage deductions may drive currentLiters negative, but never silently:
//     RecordUsage reports the overdraw via ErrInsufficientInventory
//   - each order is charged at most once (enforced together with the
//     repository's unique order index and the order's usage-recorded latch)
//
// All mutations happen in a single-writer transaction guarded by the version
// field, satisfying the global serialization requirement for the shared record.
type Ledger struct {
	// totalBarrels is the count of barrels added to date
	totalBarrels int

	// currentLiters is the volume remaining; may be transiently negative
	currentLiters float64

	// settings holds the configurable cost/consumption parameters
	settings Settings

	// version supports optimistic concurrency on the singleton row
	version int

	// isConstructed ensures the ledger was created via a constructor
	isConstructed bool
}

// NewLedger creates the ledger at system bootstrap with zero inventory and the
// given initial settings.
func NewLedger(settings Settings) (*Ledger, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Ledger{
		settings:      settings,
		isConstructed: true,
	}, nil
}

// RestoreLedger reconstructs the ledger from persistence.
func RestoreLedger(totalBarrels int, currentLiters float64, settings Settings, version int) (*Ledger, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if totalBarrels < 0 {
		return nil, fmt.Errorf("%w: totalBarrels %d is negative", ErrInvalidQuantity, totalBarrels)
	}

	return &Ledger{
		totalBarrels:  totalBarrels,
		currentLiters: currentLiters,
		settings:      settings,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Ledger instance was properly constructed through a constructor.
func (l *Ledger) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLedgerIsNotConstructed
	}
	return nil
}

// TotalBarrels returns the count of barrels added to date.
func (l *Ledger) TotalBarrels() int {
	return l.totalBarrels
}

// CurrentLiters returns the volume remaining. May be transiently negative
// after an overdrawn usage deduction.
func (l *Ledger) CurrentLiters() float64 {
	return l.currentLiters
}

// Settings returns the current cost/consumption parameters.
func (l *Ledger) Settings() Settings {
	return l.settings
}

// Version returns the optimistic concurrency version loaded from persistence.
func (l *Ledger) Version() int {
	return l.version
}

// Capacity returns the maximum volume the stock can hold: totalBarrels * BarrelLiters.
func (l *Ledger) Capacity() float64 {
	return float64(l.totalBarrels) * BarrelLiters
}

// FillPercentage returns the current volume as a percentage of capacity,
// clamped to [0, 100] for display even when the volume is transiently out of
// range. A ledger with no barrels reports 0.
func (l *Ledger) FillPercentage() float64 {
	capacity := l.Capacity()
	if capacity <= 0 {
		return 0
	}

	pct := l.currentLiters / capacity * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// IsOverdrawn reports whether usage deductions drove the volume below zero.
func (l *Ledger) IsOverdrawn() bool {
	return l.currentLiters < 0
}

// Refill adds barrels to the stock, increasing the total barrel count and the
// current volume by barrelCount * BarrelLiters.
//
// Returns an error wrapping ErrInvalidQuantity when barrelCount is not positive.
func (l *Ledger) Refill(barrelCount int) error {
	if err := l.Validate(); err != nil {
		return err
	}

	if barrelCount <= 0 {
		return fmt.Errorf("%w: barrel count %d is not greater than 0", ErrInvalidQuantity, barrelCount)
	}

	l.totalBarrels += barrelCount
	l.currentLiters += float64(barrelCount) * BarrelLiters
	return nil
}

// RecordUsage meters solvent consumption for one order. The volume and cost
// are derived from the processed area using the current settings, the volume
// is deducted, and an immutable UsageEvent is produced for the append-only log.
//
// The deduction is allowed to drive the volume negative. In that case the
// event is still created and the returned error wraps ErrInsufficientInventory
// so callers can surface a non-blocking warning.
//
// Idempotence at order granularity is the caller's responsibility: the
// repository's unique order index and the order's usage-recorded latch ensure
// at most one event per order.
func (l *Ledger) RecordUsage(orderID kernel.UUID, areaM2 float64, now time.Time) (*UsageEvent, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if areaM2 <= 0 {
		return nil, fmt.Errorf("%w: area %v m² is not greater than 0", ErrInvalidQuantity, areaM2)
	}

	liters := l.settings.LitersForArea(areaM2)
	cost := l.settings.CostForArea(areaM2)

	event, err := NewUsageEvent(orderID, areaM2, liters, cost, now)
	if err != nil {
		return nil, err
	}

	l.currentLiters -= liters

	if l.currentLiters < 0 {
		return event, fmt.Errorf("%w: volume is %.2f liters after deducting %.2f",
			ErrInsufficientInventory, l.currentLiters, liters)
	}
	return event, nil
}

// ApplySettings merges a partial settings update into the ledger.
// Invalid patches leave the ledger unchanged and return an error wrapping
// ErrInvalidSetting.
func (l *Ledger) ApplySettings(patch SettingsPatch) error {
	if err := l.Validate(); err != nil {
		return err
	}

	merged, err := l.settings.Merge(patch)
	if err != nil {
		return err
	}

	l.settings = merged
	return nil
}
