package queries

import (
	"context"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueWorkQueryHandler reads in-progress orders whose production start
// is older than the query cutoff.
type GetOverdueWorkQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueWorkQueryHandler creates a handler for the overdue work query.
// Requires a GORM database connection for query execution.
func NewGetOverdueWorkQueryHandler(db *gorm.DB) GetOverdueWorkQueryHandler {
	return GetOverdueWorkQueryHandler{db: db}
}

// Handle executes the query and returns overdue orders, longest overdue first.
func (h GetOverdueWorkQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueWorkQuery,
) ([]GetOverdueWorkQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOverdueWorkQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			created_by_id,
			started_at
		FROM orders
		WHERE status = ?
		  AND started_at < ?
		ORDER BY started_at, id
	`, order.InProgress.String(), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOverdueWorkQueryResponse
		var id, createdByID uuid.UUID
		var number string

		err = rows.Scan(
			&id,
			&number,
			&createdByID,
			&orderResp.StartedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		resolvedCreatedByID, idErr := kernel.UUIDFromBytes(createdByID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.CreatedByID = resolvedCreatedByID

		orderNumber, numErr := kernel.NewOrderNumber(number)
		if numErr != nil {
			return nil, numErr
		}
		orderResp.Number = orderNumber

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
