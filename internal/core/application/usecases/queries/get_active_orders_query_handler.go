package queries

import (
	"context"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads all non-terminal orders from the database.
// Completed and cancelled orders are excluded; everything else is live lab work.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for the lab work queue query.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query and returns active orders, oldest first, so the
// lab sees the longest-waiting work at the top.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			clinic_id,
			doctor_id,
			status,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at, id
	`, order.Completed.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id, clinicID, doctorID uuid.UUID
		var number, status string

		err = rows.Scan(
			&id,
			&number,
			&clinicID,
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

		resolvedClinicID, idErr := kernel.UUIDFromBytes(clinicID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ClinicID = resolvedClinicID

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
