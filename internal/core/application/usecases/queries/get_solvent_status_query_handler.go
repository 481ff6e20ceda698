package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/core/domain/services"
	"platetrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSolventStatusQueryHandler computes the ledger status view from the
// singleton ledger row and the usage-event log.
//
// The handler reads only the events needed for the derived metrics: the
// current calendar month (monthly rollup) and the trailing consumption window
// (days-remaining estimate).
type GetSolventStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetSolventStatusQueryHandler creates a handler for ledger status queries.
// Requires a GORM database connection for query execution.
func NewGetSolventStatusQueryHandler(db *gorm.DB) GetSolventStatusQueryHandler {
	return GetSolventStatusQueryHandler{db: db}
}

// Handle executes the status query against the database.
// Returns a not-found error when the ledger has not been bootstrapped yet.
func (h GetSolventStatusQueryHandler) Handle(
	ctx context.Context,
	query GetSolventStatusQuery,
) (GetSolventStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSolventStatusQueryResponse{}, err
	}

	var resp GetSolventStatusQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			current_liters,
			total_barrels,
			cost_per_barrel,
			recycling_cost_per_barrel,
			cost_per_square_meter,
			liters_per_square_meter,
			recycling_rate
		FROM solvent_ledger
		WHERE id = 1
	`).Row()

	err := row.Scan(
		&resp.CurrentLiters,
		&resp.TotalBarrels,
		&resp.CostPerBarrel,
		&resp.RecyclingCostPerBarrel,
		&resp.CostPerSquareMeter,
		&resp.LitersPerSquareMeter,
		&resp.RecyclingRate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetSolventStatusQueryResponse{}, errs.NewObjectNotFoundError("solventLedger", 1)
		}
		return GetSolventStatusQueryResponse{}, err
	}

	now := time.Now()
	events, err := h.loadRecentEvents(ctx, now)
	if err != nil {
		return GetSolventStatusQueryResponse{}, err
	}

	reporter := services.NewConsumptionReporter()
	monthly := reporter.MonthlyStats(events, now)

	resp.Metrics = SolventMetrics{
		FillPercentage:         fillPercentage(resp.CurrentLiters, resp.TotalBarrels),
		MaxCapacityLiters:      float64(resp.TotalBarrels) * ledger.BarrelLiters,
		EstimatedDaysRemaining: reporter.EstimatedDaysRemaining(resp.CurrentLiters, events, now),
	}
	resp.MonthlyStats = SolventMonthlyStats{
		OrdersProcessed:      monthly.OrdersProcessed,
		TotalAreaProcessedM2: monthly.TotalAreaProcessedM2,
		TotalLitersUsed:      monthly.TotalLitersUsed,
		TotalCost:            monthly.TotalCost,
	}

	return resp, nil
}

// loadRecentEvents reads the usage events covering both derived metrics:
// everything since the earlier of the calendar month start and the trailing
// consumption window start.
func (h GetSolventStatusQueryHandler) loadRecentEvents(
	ctx context.Context,
	now time.Time,
) ([]*ledger.UsageEvent, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := now.Add(-services.DaysRemainingWindow)

	since := monthStart
	if windowStart.Before(since) {
		since = windowStart
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			area_m2,
			liters_consumed,
			cost_incurred,
			recorded_at
		FROM solvent_usage_events
		WHERE recorded_at >= ?
		ORDER BY recorded_at
	`, since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*ledger.UsageEvent, 0)

	for rows.Next() {
		var id, orderID uuid.UUID
		var areaM2, liters, cost float64
		var recordedAt time.Time

		if err = rows.Scan(&id, &orderID, &areaM2, &liters, &cost, &recordedAt); err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		eventOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		event, restoreErr := ledger.RestoreUsageEvent(eventID, eventOrderID, areaM2, liters, cost, recordedAt)
		if restoreErr != nil {
			return nil, restoreErr
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// fillPercentage mirrors the ledger's clamped display computation for the
// read model without reconstructing the aggregate.
func fillPercentage(currentLiters float64, totalBarrels int) float64 {
	capacity := float64(totalBarrels) * ledger.BarrelLiters
	if capacity <= 0 {
		return 0
	}

	pct := currentLiters / capacity * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
