package queries

import (
	"context"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersForClinicQueryHandler reads one clinic's orders from the database.
//
// Example:
//
//	handler := NewGetOrdersForClinicQueryHandler(db)
//	query, _ := NewGetOrdersForClinicQuery(clinicID)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list clinic orders: %v", err)
//	    return err
//	}
type GetOrdersForClinicQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersForClinicQueryHandler creates a handler for clinic order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersForClinicQueryHandler(db *gorm.DB) GetOrdersForClinicQueryHandler {
	return GetOrdersForClinicQueryHandler{db: db}
}

// Handle executes the query and returns the clinic's orders, newest first.
func (h GetOrdersForClinicQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForClinicQuery,
) ([]GetOrdersForClinicQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersForClinicQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			doctor_id,
			status,
			created_at
		FROM orders
		WHERE clinic_id = ?
		ORDER BY created_at DESC, id
	`, query.ClinicID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOrdersForClinicQueryResponse
		var id, doctorID uuid.UUID
		var number, status string

		err = rows.Scan(
			&id,
			&number,
			&doctorID,
			&status,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		resolvedDoctorID, idErr := kernel.UUIDFromBytes(doctorID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.DoctorID = resolvedDoctorID

		orderNumber, numErr := kernel.NewOrderNumber(number)
		if numErr != nil {
			return nil, numErr
		}
		orderResp.Number = orderNumber

		orderStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		orderResp.Status = orderStatus

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
