// Package queries contains read operations that bypass the domain aggregates.
// Query handlers read the database directly and return lightweight response
// structs, keeping the read path free of aggregate loading overhead.
package queries

import (
	"errors"
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/pkg/guard"
)

var ErrGetOrdersForClinicQueryIsNotConstructed = errors.New(
	"GetOrdersForClinicQuery must be created via NewGetOrdersForClinicQuery constructor",
)

// GetOrdersForClinicQuery retrieves all orders belonging to one clinic,
// newest first. Backs the clinic-facing order list.
//
// Example:
//
//	query, err := NewGetOrdersForClinicQuery(clinicID)
//	if err != nil {
//	    return fmt.Errorf("invalid clinic id: %w", err)
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list clinic orders: %w", err)
//	}
//	fmt.Printf("Clinic has %d orders\n", len(orders))
type GetOrdersForClinicQuery struct {
	clinicID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersForClinicQuery creates a query scoped to one clinic.
// Validates the clinic identifier.
func NewGetOrdersForClinicQuery(clinicID kernel.UUID) (GetOrdersForClinicQuery, error) {
	if err := clinicID.Validate(); err != nil {
		return GetOrdersForClinicQuery{}, err
	}

	return GetOrdersForClinicQuery{
		clinicID: clinicID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersForClinicQueryIsNotConstructed if validation fails.
func (q GetOrdersForClinicQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForClinicQueryIsNotConstructed)
}

// ClinicID returns the clinic the listing is scoped to.
func (q GetOrdersForClinicQuery) ClinicID() kernel.UUID {
	return q.clinicID
}

// GetOrdersForClinicQueryResponse represents one order row in the clinic listing.
type GetOrdersForClinicQueryResponse struct {
	ID        kernel.UUID
	Number    kernel.OrderNumber
	DoctorID  kernel.UUID
	Status    order.Status
	CreatedAt time.Time
}
