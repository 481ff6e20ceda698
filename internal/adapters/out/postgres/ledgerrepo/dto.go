// Package ledgerrepo provides data transfer objects and mapping functions for
// solvent ledger persistence. The ledger lives in a single row keyed by a
// well-known id; usage events are an append-only table with a unique index on
// the order id that enforces the one-event-per-order invariant in storage.
package ledgerrepo

import (
	"time"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// ledgerRowID is the fixed primary key of the singleton ledger row.
const ledgerRowID = 1

// LedgerDTO represents the database structure for the singleton solvent ledger.
// Settings are flattened into columns; the version column backs the
// compare-and-swap in Save.
type LedgerDTO struct {
	ID                     int `gorm:"primaryKey"`
	TotalBarrels           int
	CurrentLiters          float64
	CostPerBarrel          float64
	RecyclingCostPerBarrel float64
	CostPerSquareMeter     float64
	LitersPerSquareMeter   float64
	RecyclingRate          float64
	Version                int
}

// TableName specifies the database table name for the ledger record.
func (LedgerDTO) TableName() string {
	return "solvent_ledger"
}

// UsageEventDTO represents one immutable solvent consumption record.
// The unique index on order_id rejects a second event for the same order at
// the storage level.
type UsageEventDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	AreaM2         float64   `gorm:"column:area_m2"`
	LitersConsumed float64
	CostIncurred   float64
	RecordedAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for usage events.
func (UsageEventDTO) TableName() string {
	return "solvent_usage_events"
}

// fromDomain converts the ledger aggregate to its database representation.
func fromDomain(aggregate *ledger.Ledger) LedgerDTO {
	settings := aggregate.Settings()

	return LedgerDTO{
		ID:                     ledgerRowID,
		TotalBarrels:           aggregate.TotalBarrels(),
		CurrentLiters:          aggregate.CurrentLiters(),
		CostPerBarrel:          settings.CostPerBarrel,
		RecyclingCostPerBarrel: settings.RecyclingCostPerBarrel,
		CostPerSquareMeter:     settings.CostPerSquareMeter,
		LitersPerSquareMeter:   settings.LitersPerSquareMeter,
		RecyclingRate:          settings.RecyclingRate,
		Version:                aggregate.Version(),
	}
}

// toDomain converts a database DTO to the ledger aggregate using RestoreLedger.
func toDomain(dto LedgerDTO) (*ledger.Ledger, error) {
	settings := ledger.Settings{
		CostPerBarrel:          dto.CostPerBarrel,
		RecyclingCostPerBarrel: dto.RecyclingCostPerBarrel,
		CostPerSquareMeter:     dto.CostPerSquareMeter,
		LitersPerSquareMeter:   dto.LitersPerSquareMeter,
		RecyclingRate:          dto.RecyclingRate,
	}

	return ledger.RestoreLedger(dto.TotalBarrels, dto.CurrentLiters, settings, dto.Version)
}

// eventFromDomain converts a usage event to its database representation.
func eventFromDomain(event *ledger.UsageEvent) UsageEventDTO {
	return UsageEventDTO{
		ID:             event.ID().Bytes(),
		OrderID:        event.OrderID().Bytes(),
		AreaM2:         event.AreaM2(),
		LitersConsumed: event.LitersConsumed(),
		CostIncurred:   event.CostIncurred(),
		RecordedAt:     event.RecordedAt(),
	}
}

// eventToDomain converts a database DTO to a usage event using RestoreUsageEvent.
func eventToDomain(dto UsageEventDTO) (*ledger.UsageEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreUsageEvent(
		id,
		orderID,
		dto.AreaM2,
		dto.LitersConsumed,
		dto.CostIncurred,
		dto.RecordedAt,
	)
}
