package services

import (
	"time"

	"platetrack/internal/core/domain/model/ledger"
)

// DaysRemainingWindow is the trailing period used to estimate the average
// daily solvent burn rate.
const DaysRemainingWindow = 30 * 24 * time.Hour

// MonthlyStats aggregates the usage events of one calendar month.
type MonthlyStats struct {
	OrdersProcessed      int
	TotalAreaProcessedM2 float64
	TotalLitersUsed      float64
	TotalCost            float64
}

// ConsumptionReporter is a stateless domain service that computes read-only
// derived views over the solvent ledger and its usage-event log: monthly
// rollups and a days-remaining estimate based on recent consumption velocity.
//
// The reporter never mutates state and holds no references; it is safe for
// concurrent use.
//
// Example usage:
//
//	reporter := services.NewConsumptionReporter()
//	stats := reporter.MonthlyStats(events, time.Now())
//	days := reporter.EstimatedDaysRemaining(lgr.CurrentLiters(), events, time.Now())
//	if days == nil {
//	    // no consumption history, display "N/A"
//	}
type ConsumptionReporter struct{}

// NewConsumptionReporter creates a new ConsumptionReporter instance.
func NewConsumptionReporter() ConsumptionReporter {
	return ConsumptionReporter{}
}

// MonthlyStats sums area, liters, and cost over the usage events whose
// timestamp falls in the calendar month of now (in now's location), counting
// distinct orders for OrdersProcessed. Events outside the month are ignored.
func (r ConsumptionReporter) MonthlyStats(events []*ledger.UsageEvent, now time.Time) MonthlyStats {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var stats MonthlyStats
	seen := make(map[string]bool)

	for _, event := range events {
		recordedAt := event.RecordedAt()
		if recordedAt.Before(monthStart) || !recordedAt.Before(monthEnd) {
			continue
		}

		stats.TotalAreaProcessedM2 += event.AreaM2()
		stats.TotalLitersUsed += event.LitersConsumed()
		stats.TotalCost += event.CostIncurred()

		orderID := event.OrderID().String()
		if !seen[orderID] {
			seen[orderID] = true
			stats.OrdersProcessed++
		}
	}

	return stats
}

// EstimatedDaysRemaining divides the current volume by the average daily
// consumption over the trailing DaysRemainingWindow.
//
// Returns nil when there is no consumption history in the window, when the
// burn rate is zero, or when the current volume is not positive. The caller
// renders that as "N/A".
func (r ConsumptionReporter) EstimatedDaysRemaining(
	currentLiters float64,
	events []*ledger.UsageEvent,
	now time.Time,
) *float64 {
	if currentLiters <= 0 {
		return nil
	}

	windowStart := now.Add(-DaysRemainingWindow)

	var litersInWindow float64
	for _, event := range events {
		recordedAt := event.RecordedAt()
		if recordedAt.Before(windowStart) || recordedAt.After(now) {
			continue
		}
		litersInWindow += event.LitersConsumed()
	}

	if litersInWindow <= 0 {
		return nil
	}

	windowDays := DaysRemainingWindow.Hours() / 24
	litersPerDay := litersInWindow / windowDays

	days := currentLiters / litersPerDay
	return &days
}
