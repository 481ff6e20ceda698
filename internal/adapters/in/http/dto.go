package http

import (
	"time"

	"platetrack/internal/core/application/usecases/queries"
	"platetrack/internal/core/domain/model/ledger"
	"platetrack/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error payload of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DimensionsPayload carries plate geometry in requests and responses.
type DimensionsPayload struct {
	Width             float64 `json:"width"`
	Height            float64 `json:"height"`
	WidthRepeatCount  int     `json:"widthRepeatCount,omitempty"`
	HeightRepeatCount int     `json:"heightRepeatCount,omitempty"`
}

// CreateOrderRequest is the body of POST /orders.
// OrderID is optional; a fresh identifier is generated when omitted.
type CreateOrderRequest struct {
	OrderID    string             `json:"orderId,omitempty"`
	TemplateID string             `json:"templateId"`
	Dimensions *DimensionsPayload `json:"dimensions,omitempty"`
}

// UpdateSubProcessRequest is the body of PUT /orders/:orderId/sub-processes/:name.
type UpdateSubProcessRequest struct {
	Status string `json:"status"`
}

// SetOrderStatusRequest is the body of PUT /orders/:orderId/status.
type SetOrderStatusRequest struct {
	Status string `json:"status"`
}

// RefillSolventRequest is the body of POST /solvent/refill.
type RefillSolventRequest struct {
	Barrels int `json:"barrels"`
}

// SolventSettingsRequest is the body of PUT /solvent/settings.
// Omitted fields keep their current values.
type SolventSettingsRequest struct {
	CostPerBarrel          *float64 `json:"costPerBarrel,omitempty"`
	RecyclingCostPerBarrel *float64 `json:"recyclingCostPerBarrel,omitempty"`
	CostPerSquareMeter     *float64 `json:"costPerSquareMeter,omitempty"`
	LitersPerSquareMeter   *float64 `json:"litersPerSquareMeter,omitempty"`
	RecyclingRate          *float64 `json:"recyclingRate,omitempty"`
}

// RecordUsageRequest is the body of POST /solvent/usage.
type RecordUsageRequest struct {
	OrderID string  `json:"orderId"`
	AreaM2  float64 `json:"areaM2"`
}

// StagePayload is the display state of one production stage.
type StagePayload struct {
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// SubProcessPayload is the display state of one prepress sub-process.
type SubProcessPayload struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// OrderResponse is the order view returned by the workflow endpoints.
// Warning and UsageEvent are only populated by the sub-process update when the
// washout trigger fires.
type OrderResponse struct {
	ID            string                  `json:"id"`
	Status        string                  `json:"status"`
	TemplateID    string                  `json:"templateId"`
	Stages        map[string]StagePayload `json:"stages"`
	SubProcesses  []SubProcessPayload     `json:"subProcesses"`
	Dimensions    *DimensionsPayload      `json:"dimensions,omitempty"`
	UsageRecorded bool                    `json:"usageRecorded"`
	UsageEvent    *UsageEventResponse     `json:"usageEvent,omitempty"`
	Warning       string                  `json:"warning,omitempty"`
}

// UsageEventResponse is one recorded solvent consumption.
type UsageEventResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	AreaM2         float64   `json:"areaM2"`
	LitersConsumed float64   `json:"litersConsumed"`
	CostIncurred   float64   `json:"costIncurred"`
	RecordedAt     time.Time `json:"recordedAt"`
	Warning        string    `json:"warning,omitempty"`
}

// SolventSettingsPayload carries the ledger settings in responses.
type SolventSettingsPayload struct {
	CostPerBarrel          float64 `json:"costPerBarrel"`
	RecyclingCostPerBarrel float64 `json:"recyclingCostPerBarrel"`
	CostPerSquareMeter     float64 `json:"costPerSquareMeter"`
	LitersPerSquareMeter   float64 `json:"litersPerSquareMeter"`
	RecyclingRate          float64 `json:"recyclingRate"`
}

// LedgerResponse is the ledger view returned by the refill and settings
// endpoints, reflecting the state after the change.
type LedgerResponse struct {
	TotalBarrels      int                    `json:"totalBarrels"`
	CurrentLiters     float64                `json:"currentLiters"`
	MaxCapacityLiters float64                `json:"maxCapacityLiters"`
	FillPercentage    float64                `json:"fillPercentage"`
	Settings          SolventSettingsPayload `json:"settings"`
}

// SolventMetricsPayload carries the derived display metrics of the ledger.
type SolventMetricsPayload struct {
	FillPercentage         float64  `json:"fillPercentage"`
	MaxCapacityLiters      float64  `json:"maxCapacityLiters"`
	EstimatedDaysRemaining *float64 `json:"estimatedDaysRemaining"`
}

// MonthlyStatsPayload is the current calendar month's consumption rollup.
type MonthlyStatsPayload struct {
	OrdersProcessed      int     `json:"ordersProcessed"`
	TotalAreaProcessedM2 float64 `json:"totalAreaProcessedM2"`
	TotalLitersUsed      float64 `json:"totalLitersUsed"`
	TotalCost            float64 `json:"totalCost"`
}

// SolventStatusResponse is the full status view of GET /solvent/status.
type SolventStatusResponse struct {
	TotalBarrels  int                    `json:"totalBarrels"`
	CurrentLiters float64                `json:"currentLiters"`
	Settings      SolventSettingsPayload `json:"settings"`
	Metrics       SolventMetricsPayload  `json:"metrics"`
	MonthlyStats  MonthlyStatsPayload    `json:"monthlyStats"`
}

// orderToResponse maps the order aggregate to its API view.
func orderToResponse(aggregate *order.Order) OrderResponse {
	stages := aggregate.Stages()
	subs := aggregate.SubProcesses()

	resp := OrderResponse{
		ID:            aggregate.ID().String(),
		Status:        aggregate.Status().String(),
		TemplateID:    string(aggregate.TemplateID()),
		Stages:        make(map[string]StagePayload, len(stages)),
		SubProcesses:  make([]SubProcessPayload, 0, len(subs)),
		UsageRecorded: aggregate.UsageRecorded(),
	}

	for name, state := range stages {
		resp.Stages[string(name)] = StagePayload{
			Status:      state.Status.String(),
			CompletedAt: state.CompletedAt,
		}
	}

	for _, sub := range subs {
		resp.SubProcesses = append(resp.SubProcesses, SubProcessPayload{
			Name:        sub.Name,
			Status:      sub.Status.String(),
			CompletedAt: sub.CompletedAt,
		})
	}

	if dims := aggregate.Dimensions(); dims != nil {
		resp.Dimensions = &DimensionsPayload{
			Width:             dims.WidthCm(),
			Height:            dims.HeightCm(),
			WidthRepeatCount:  dims.WidthRepeatCount(),
			HeightRepeatCount: dims.HeightRepeatCount(),
		}
	}

	return resp
}

// queryOrderToResponse maps the order read model to its API view.
func queryOrderToResponse(view queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:            view.ID.String(),
		Status:        view.Status,
		TemplateID:    view.TemplateID,
		Stages:        make(map[string]StagePayload, len(view.Stages)),
		SubProcesses:  make([]SubProcessPayload, 0, len(view.SubProcesses)),
		UsageRecorded: view.UsageRecorded,
	}

	for name, stage := range view.Stages {
		resp.Stages[name] = StagePayload{
			Status:      stage.Status,
			CompletedAt: stage.CompletedAt,
		}
	}

	for _, sub := range view.SubProcesses {
		resp.SubProcesses = append(resp.SubProcesses, SubProcessPayload{
			Name:        sub.Name,
			Status:      sub.Status,
			CompletedAt: sub.CompletedAt,
		})
	}

	if view.Dimensions != nil {
		resp.Dimensions = &DimensionsPayload{
			Width:             view.Dimensions.WidthCm,
			Height:            view.Dimensions.HeightCm,
			WidthRepeatCount:  view.Dimensions.WidthRepeatCount,
			HeightRepeatCount: view.Dimensions.HeightRepeatCount,
		}
	}

	return resp
}

// usageEventToResponse maps a usage event to its API view.
func usageEventToResponse(event *ledger.UsageEvent) *UsageEventResponse {
	if event == nil {
		return nil
	}

	return &UsageEventResponse{
		ID:             event.ID().String(),
		OrderID:        event.OrderID().String(),
		AreaM2:         event.AreaM2(),
		LitersConsumed: event.LitersConsumed(),
		CostIncurred:   event.CostIncurred(),
		RecordedAt:     event.RecordedAt(),
	}
}

// ledgerToResponse maps the ledger aggregate to its API view.
func ledgerToResponse(aggregate *ledger.Ledger) LedgerResponse {
	settings := aggregate.Settings()

	return LedgerResponse{
		TotalBarrels:      aggregate.TotalBarrels(),
		CurrentLiters:     aggregate.CurrentLiters(),
		MaxCapacityLiters: aggregate.Capacity(),
		FillPercentage:    aggregate.FillPercentage(),
		Settings: SolventSettingsPayload{
			CostPerBarrel:          settings.CostPerBarrel,
			RecyclingCostPerBarrel: settings.RecyclingCostPerBarrel,
			CostPerSquareMeter:     settings.CostPerSquareMeter,
			LitersPerSquareMeter:   settings.LitersPerSquareMeter,
			RecyclingRate:          settings.RecyclingRate,
		},
	}
}

// solventStatusToResponse maps the status read model to its API view.
func solventStatusToResponse(view queries.GetSolventStatusQueryResponse) SolventStatusResponse {
	return SolventStatusResponse{
		TotalBarrels:  view.TotalBarrels,
		CurrentLiters: view.CurrentLiters,
		Settings: SolventSettingsPayload{
			CostPerBarrel:          view.CostPerBarrel,
			RecyclingCostPerBarrel: view.RecyclingCostPerBarrel,
			CostPerSquareMeter:     view.CostPerSquareMeter,
			LitersPerSquareMeter:   view.LitersPerSquareMeter,
			RecyclingRate:          view.RecyclingRate,
		},
		Metrics: SolventMetricsPayload{
			FillPercentage:         view.Metrics.FillPercentage,
			MaxCapacityLiters:      view.Metrics.MaxCapacityLiters,
			EstimatedDaysRemaining: view.Metrics.EstimatedDaysRemaining,
		},
		MonthlyStats: MonthlyStatsPayload{
			OrdersProcessed:      view.MonthlyStats.OrdersProcessed,
			TotalAreaProcessedM2: view.MonthlyStats.TotalAreaProcessedM2,
			TotalLitersUsed:      view.MonthlyStats.TotalLitersUsed,
			TotalCost:            view.MonthlyStats.TotalCost,
		},
	}
}
