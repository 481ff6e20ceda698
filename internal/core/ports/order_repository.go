package ports

import (
	"context"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Updates use the aggregate's version for an optimistic concurrency check so
// two concurrent workflow updates on the same order cannot silently drop one.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with a version error when the stored row no longer matches the
	// version the aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with stage and sub-process state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
