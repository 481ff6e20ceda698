// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"platetrack/internal/core/domain/model/kernel"
	"platetrack/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Stage and sub-process progress is stored as JSONB; plate dimensions are
// nullable columns because geometry may be unknown at submission time.
// The version column backs the optimistic concurrency check in Update.
type OrderDTO struct {
	ID              uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	Status          int                                  `gorm:"index"`
	TemplateID      string
	Stages          map[order.StageName]order.StageState `gorm:"type:jsonb;serializer:json"`
	SubProcesses    []order.SubProcessState              `gorm:"type:jsonb;serializer:json"`
	DimWidthCm      *float64
	DimHeightCm     *float64
	DimWidthRepeat  *int
	DimHeightRepeat *int
	UsageRecorded   bool
	Version         int
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Status:        int(aggregate.Status()),
		TemplateID:    string(aggregate.TemplateID()),
		Stages:        aggregate.Stages(),
		SubProcesses:  aggregate.SubProcesses(),
		UsageRecorded: aggregate.UsageRecorded(),
		Version:       aggregate.Version(),
	}

	if dims := aggregate.Dimensions(); dims != nil {
		width := dims.WidthCm()
		height := dims.HeightCm()
		widthRepeat := dims.WidthRepeatCount()
		heightRepeat := dims.HeightRepeatCount()

		dto.DimWidthCm = &width
		dto.DimHeightCm = &height
		dto.DimWidthRepeat = &widthRepeat
		dto.DimHeightRepeat = &heightRepeat
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including stage progress, the
// usage-recorded latch and the version using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var dimensions *order.Dimensions
	if dto.DimWidthCm != nil && dto.DimHeightCm != nil {
		widthRepeat, heightRepeat := 1, 1
		if dto.DimWidthRepeat != nil {
			widthRepeat = *dto.DimWidthRepeat
		}
		if dto.DimHeightRepeat != nil {
			heightRepeat = *dto.DimHeightRepeat
		}

		dims, dimErr := order.NewDimensions(*dto.DimWidthCm, *dto.DimHeightCm, widthRepeat, heightRepeat)
		if dimErr != nil {
			return nil, dimErr
		}
		dimensions = &dims
	}

	return order.RestoreOrder(
		id,
		order.Status(dto.Status),
		dto.Stages,
		dto.SubProcesses,
		order.TemplateID(dto.TemplateID),
		dimensions,
		dto.UsageRecorded,
		dto.Version,
	)
}
