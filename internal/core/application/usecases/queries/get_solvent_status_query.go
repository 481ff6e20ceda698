// Package queries contains read-only operations that compute display views
// over persisted state. Implements the Query side of the CQRS architecture.
// Query handlers read through gorm directly and never mutate state.
package queries

import (
	"errors"

	"platetrack/internal/pkg/guard"
)

var ErrGetSolventStatusQueryIsNotConstructed = errors.New(
	"GetSolventStatusQuery must be created via NewGetSolventStatusQuery constructor",
)

// GetSolventStatusQuery retrieves the solvent ledger snapshot with derived
// metrics for display: fill percentage, maximum capacity, estimated days
// remaining, and the current month's consumption rollup.
//
// Example:
//
//	query := NewGetSolventStatusQuery()
//	handler := NewGetSolventStatusQueryHandler(db)
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get solvent status: %w", err)
//	}
//	fmt.Printf("%.1f%% full\n", status.Metrics.FillPercentage)
type GetSolventStatusQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSolventStatusQuery creates a query for the ledger status snapshot.
// This is a parameterless query.
func NewGetSolventStatusQuery() GetSolventStatusQuery {
	return GetSolventStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetSolventStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetSolventStatusQueryIsNotConstructed)
}

// SolventMetrics carries the derived display metrics of the ledger.
// EstimatedDaysRemaining is nil when there is no consumption history.
type SolventMetrics struct {
	FillPercentage         float64
	MaxCapacityLiters      float64
	EstimatedDaysRemaining *float64
}

// SolventMonthlyStats is the current calendar month's consumption rollup.
type SolventMonthlyStats struct {
	OrdersProcessed      int
	TotalAreaProcessedM2 float64
	TotalLitersUsed      float64
	TotalCost            float64
}

// GetSolventStatusQueryResponse is the read model for the ledger status view.
type GetSolventStatusQueryResponse struct {
	CurrentLiters          float64
	TotalBarrels           int
	CostPerBarrel          float64
	RecyclingCostPerBarrel float64
	CostPerSquareMeter     float64
	LitersPerSquareMeter   float64
	RecyclingRate          float64
	Metrics                SolventMetrics
	MonthlyStats           SolventMonthlyStats
}
