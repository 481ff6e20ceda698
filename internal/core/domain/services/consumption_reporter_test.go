package services_test

import (
	"testing"
	"time"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T, orderID kernel.UUID, liters float64, recordedAt time.Time) *ledger.UsageEvent {
	t.Helper()
	event, err := ledger.NewUsageEvent(orderID, liters/10, liters, liters*42.4, recordedAt)
	require.NoError(t, err)
	return event
}

func TestConsumptionReporter_MonthlyStats(t *testing.T) {
	reporter := services.NewConsumptionReporter()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("should sum only the events of the current calendar month", func(t *testing.T) {
		events := []*ledger.UsageEvent{
			newEvent(t, kernel.NewUUID(), 10, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
			newEvent(t, kernel.NewUUID(), 20, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
			newEvent(t, kernel.NewUUID(), 30, time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)),
			newEvent(t, kernel.NewUUID(), 40, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		}

		stats := reporter.MonthlyStats(events, now)

		assert.Equal(t, 2, stats.OrdersProcessed)
		assert.InDelta(t, 3.0, stats.TotalAreaProcessedM2, 1e-9)
		assert.InDelta(t, 30.0, stats.TotalLitersUsed, 1e-9)
		assert.InDelta(t, 30*42.4, stats.TotalCost, 1e-9)
	})

	t.Run("should count each order once", func(t *testing.T) {
		orderID := kernel.NewUUID()
		events := []*ledger.UsageEvent{
			newEvent(t, orderID, 10, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
			newEvent(t, orderID, 15, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)),
		}

		stats := reporter.MonthlyStats(events, now)

		assert.Equal(t, 1, stats.OrdersProcessed)
		assert.InDelta(t, 25.0, stats.TotalLitersUsed, 1e-9)
	})

	t.Run("should return zeros for an empty log", func(t *testing.T) {
		stats := reporter.MonthlyStats(nil, now)

		assert.Equal(t, services.MonthlyStats{}, stats)
	})
}

func TestConsumptionReporter_EstimatedDaysRemaining(t *testing.T) {
	reporter := services.NewConsumptionReporter()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("should divide the current volume by the trailing burn rate", func(t *testing.T) {
		// 300 L over the trailing 30 days is 10 L/day
		events := []*ledger.UsageEvent{
			newEvent(t, kernel.NewUUID(), 100, now.AddDate(0, 0, -5)),
			newEvent(t, kernel.NewUUID(), 200, now.AddDate(0, 0, -20)),
		}

		days := reporter.EstimatedDaysRemaining(450, events, now)

		require.NotNil(t, days)
		assert.InDelta(t, 45.0, *days, 1e-9)
	})

	t.Run("should ignore events outside the trailing window", func(t *testing.T) {
		events := []*ledger.UsageEvent{
			newEvent(t, kernel.NewUUID(), 150, now.AddDate(0, 0, -10)),
			newEvent(t, kernel.NewUUID(), 9000, now.AddDate(0, 0, -31)),
			newEvent(t, kernel.NewUUID(), 9000, now.AddDate(0, 0, 1)),
		}

		days := reporter.EstimatedDaysRemaining(100, events, now)

		require.NotNil(t, days)
		assert.InDelta(t, 20.0, *days, 1e-9)
	})

	t.Run("should return nil without consumption history", func(t *testing.T) {
		assert.Nil(t, reporter.EstimatedDaysRemaining(450, nil, now))
	})

	t.Run("should return nil when only stale events exist", func(t *testing.T) {
		events := []*ledger.UsageEvent{
			newEvent(t, kernel.NewUUID(), 100, now.AddDate(0, -2, 0)),
		}

		assert.Nil(t, reporter.EstimatedDaysRemaining(450, events, now))
	})

	t.Run("should return nil when the stock is empty or overdrawn", func(t *testing.T) {
		events := []*ledger.UsageEvent{
			newEvent(t, kernel.NewUUID(), 100, now.AddDate(0, 0, -5)),
		}

		assert.Nil(t, reporter.EstimatedDaysRemaining(0, events, now))
		assert.Nil(t, reporter.EstimatedDaysRemaining(-25, events, now))
	})
}
