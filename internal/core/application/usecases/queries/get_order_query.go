package queries

import (
	"errors"
	"time"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order's workflow state for display:
// status, stage progress, sub-process checklist, geometry, and whether
// solvent usage has been metered.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order by id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderStageResponse is the display state of one production stage.
type OrderStageResponse struct {
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// OrderSubProcessResponse is the display state of one prepress sub-process.
type OrderSubProcessResponse struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// OrderDimensionsResponse is the declared plate geometry of an order.
type OrderDimensionsResponse struct {
	WidthCm           float64 `json:"width"`
	HeightCm          float64 `json:"height"`
	WidthRepeatCount  int     `json:"widthRepeatCount"`
	HeightRepeatCount int     `json:"heightRepeatCount"`
}

// GetOrderQueryResponse is the read model for one order's workflow state.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Status        string
	TemplateID    string
	Stages        map[string]OrderStageResponse
	SubProcesses  []OrderSubProcessResponse
	Dimensions    *OrderDimensionsResponse
	UsageRecorded bool
}
