package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves the singleton ledger record.
func (r *GormLedgerRepository) Get(ctx context.Context) (*ledger.Ledger, error) {
	var dto LedgerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", ledgerRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("solventLedger", ledgerRowID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add persists the ledger row at bootstrap.
func (r *GormLedgerRepository) Add(ctx context.Context, aggregate *ledger.Ledger) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Save persists ledger changes with an optimistic version check.
//
// The update only applies when the stored version still matches the version
// the aggregate was loaded with; the version is bumped in the same statement.
// A lost race surfaces as a version error and the caller retries from a fresh
// read.
func (r *GormLedgerRepository) Save(ctx context.Context, aggregate *ledger.Ledger) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&LedgerDTO{}).
		Where("id = ? AND version = ?", ledgerRowID, aggregate.Version()).
		Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("solventLedger")
	}

	return nil
}

// AddUsageEvent appends an immutable usage event to the consumption log.
// The unique index on order_id turns a duplicate into a storage error, which
// callers treat as the duplicate-usage condition.
func (r *GormLedgerRepository) AddUsageEvent(ctx context.Context, event *ledger.UsageEvent) error {
	dto := eventFromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ledger.ErrDuplicateUsage
		}
		return err
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

// GetUsageEventByOrder retrieves the usage event recorded for an order.
func (r *GormLedgerRepository) GetUsageEventByOrder(ctx context.Context, orderID kernel.UUID) (*ledger.UsageEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto UsageEventDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("usageEvent", orderID.String())
		}
		return nil, err
	}

	return eventToDomain(dto)
}

// GetUsageEventsSince retrieves all usage events recorded at or after the
// given instant, ordered by recording time.
func (r *GormLedgerRepository) GetUsageEventsSince(ctx context.Context, since time.Time) ([]*ledger.UsageEvent, error) {
	var dtos []UsageEventDTO
	err := r.db.WithContext(ctx).
		Where("recorded_at >= ?", since).
		Order("recorded_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*ledger.UsageEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
