// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The unique index on Number is the collision detector for order number
// allocation; lifecycle timestamps are nullable and written once.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"type:varchar(32);uniqueIndex"`
	DoctorID    uuid.UUID `gorm:"type:uuid;index"`
	ClinicID    uuid.UUID `gorm:"type:uuid;index"`
	CreatedByID uuid.UUID `gorm:"type:uuid"`
	Status      string    `gorm:"type:varchar(20);index"`
	CreatedAt   time.Time

	SubmittedAt     *time.Time
	MaterialsSentAt *time.Time
	InfoRequestedAt *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	timestamps := aggregate.LifecycleTimestamps()

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		Number:      aggregate.Number().String(),
		DoctorID:    aggregate.DoctorID().Bytes(),
		ClinicID:    aggregate.ClinicID().Bytes(),
		CreatedByID: aggregate.CreatedByID().Bytes(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),

		SubmittedAt:     timestamps.SubmittedAt,
		MaterialsSentAt: timestamps.MaterialsSentAt,
		InfoRequestedAt: timestamps.InfoRequestedAt,
		StartedAt:       timestamps.StartedAt,
		CompletedAt:     timestamps.CompletedAt,
		CancelledAt:     timestamps.CancelledAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and lifecycle
// timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.NewOrderNumber(dto.Number)
	if err != nil {
		return nil, err
	}

	doctorID, err := kernel.UUIDFromBytes(dto.DoctorID[:])
	if err != nil {
		return nil, err
	}

	clinicID, err := kernel.UUIDFromBytes(dto.ClinicID[:])
	if err != nil {
		return nil, err
	}

	createdByID, err := kernel.UUIDFromBytes(dto.CreatedByID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, number, doctorID, clinicID, createdByID, status, dto.CreatedAt, order.Timestamps{
		SubmittedAt:     dto.SubmittedAt,
		MaterialsSentAt: dto.MaterialsSentAt,
		InfoRequestedAt: dto.InfoRequestedAt,
		StartedAt:       dto.StartedAt,
		CompletedAt:     dto.CompletedAt,
		CancelledAt:     dto.CancelledAt,
	})
}
