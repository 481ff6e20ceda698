package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/order"
	"platetrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's workflow state from the database.
// The stage and sub-process JSON columns are translated into display strings
// without reconstructing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order state queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// stageStateRow mirrors the persisted JSON shape of one stage.
type stageStateRow struct {
	Status      int        `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// subProcessStateRow mirrors the persisted JSON shape of one sub-process.
type subProcessStateRow struct {
	Name        string     `json:"name"`
	Status      int        `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Handle executes the order query.
// Returns a not-found error when no order exists with the queried id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			template_id,
			stages,
			sub_processes,
			dim_width_cm,
			dim_height_cm,
			dim_width_repeat,
			dim_height_repeat,
			usage_recorded
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id                  uuid.UUID
		status              int
		templateID          string
		stagesRaw           []byte
		subProcessesRaw     []byte
		dimWidth, dimHeight *float64
		dimWidthRepeat      *int
		dimHeightRepeat     *int
		usageRecorded       bool
	)

	err := row.Scan(
		&id,
		&status,
		&templateID,
		&stagesRaw,
		&subProcessesRaw,
		&dimWidth,
		&dimHeight,
		&dimWidthRepeat,
		&dimHeightRepeat,
		&usageRecorded,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var stageRows map[string]stageStateRow
	if err = json.Unmarshal(stagesRaw, &stageRows); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var subRows []subProcessStateRow
	if err = json.Unmarshal(subProcessesRaw, &subRows); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:            orderID,
		Status:        order.Status(status).String(),
		TemplateID:    templateID,
		Stages:        make(map[string]OrderStageResponse, len(stageRows)),
		SubProcesses:  make([]OrderSubProcessResponse, 0, len(subRows)),
		UsageRecorded: usageRecorded,
	}

	for name, stage := range stageRows {
		resp.Stages[name] = OrderStageResponse{
			Status:      order.StageStatus(stage.Status).String(),
			CompletedAt: stage.CompletedAt,
		}
	}

	for _, sub := range subRows {
		resp.SubProcesses = append(resp.SubProcesses, OrderSubProcessResponse{
			Name:        sub.Name,
			Status:      order.SubProcessStatus(sub.Status).String(),
			CompletedAt: sub.CompletedAt,
		})
	}

	if dimWidth != nil && dimHeight != nil {
		dims := OrderDimensionsResponse{
			WidthCm:           *dimWidth,
			HeightCm:          *dimHeight,
			WidthRepeatCount:  1,
			HeightRepeatCount: 1,
		}
		if dimWidthRepeat != nil {
			dims.WidthRepeatCount = *dimWidthRepeat
		}
		if dimHeightRepeat != nil {
			dims.HeightRepeatCount = *dimHeightRepeat
		}
		resp.Dimensions = &dims
	}

	return resp, nil
}
