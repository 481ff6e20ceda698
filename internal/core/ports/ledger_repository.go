package ports

import (
	"context"
	"time"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the singleton solvent
// ledger and its append-only usage-event log.
//
// The ledger is stored as a single row with a version column; Save performs a
// compare-and-swap on that version so concurrent refills and usage recordings
// are serialized, preserving the exactly-once-per-order invariant.
type LedgerRepository interface {
	// Get retrieves the singleton ledger record.
	// Returns a not-found error before the ledger has been bootstrapped.
	Get(ctx context.Context) (*ledger.Ledger, error)

	// Add persists the ledger row at bootstrap. Called once per deployment.
	Add(ctx context.Context, aggregate *ledger.Ledger) error

	// Save persists ledger changes with an optimistic version check.
	// Fails with a version error when another writer got there first.
	Save(ctx context.Context, aggregate *ledger.Ledger) error

	// AddUsageEvent appends an immutable usage event.
	// The storage enforces at most one event per order.
	AddUsageEvent(ctx context.Context, event *ledger.UsageEvent) error

	// GetUsageEventByOrder retrieves the usage event recorded for an order.
	// Returns a not-found error when the order has no event.
	GetUsageEventByOrder(ctx context.Context, orderID kernel.UUID) (*ledger.UsageEvent, error)

	// GetUsageEventsSince retrieves all usage events recorded at or after the
	// given instant, ordered by recording time.
	GetUsageEventsSince(ctx context.Context, since time.Time) ([]*ledger.UsageEvent, error)
}
