package commands

import (
	"context"
	"errors"
	"time"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/core/domain/services"
	"dentlab/internal/core/ports"
	"dentlab/internal/pkg/clock"
	"dentlab/internal/pkg/errs"
)

const (
	// maxAllocationAttempts bounds how many order number candidates are
	// tried before the command gives up.
	maxAllocationAttempts = 3

	// allocationBackoffStep is multiplied by the attempt count to space
	// out retries after a number collision.
	allocationBackoffStep = 25 * time.Millisecond
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Allocates a unique order number with a bounded retry loop and persists the
// new order in draft status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, generator, clk, sleeper)
//	cmd, _ := NewCreateOrderCommand(doctorID, clinicID, userID, "Jane Porter")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now a draft with a collision-free number
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	generator  services.OrderNumberGenerator
	clock      clock.Clock
	sleeper    clock.Sleeper
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence, a number
// generator, a clock, and a sleeper used for backoff between retries.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	generator services.OrderNumberGenerator,
	clk clock.Clock,
	sleeper clock.Sleeper,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		clock:      clk,
		sleeper:    sleeper,
	}
}

// Handle processes the order creation command.
// Generates an order number candidate, then persists the order. When the
// persistence layer reports the number as taken, it backs off and retries
// with a fresh candidate, up to maxAllocationAttempts in total. Exhausting
// all attempts returns *errs.AllocationExhaustedError.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastCandidate string
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		now := h.clock.Now()

		number, err := h.generator.Generate(cmd.DoctorID(), cmd.PatientName(), now)
		if err != nil {
			return nil, err
		}
		lastCandidate = number.String()

		newOrder, err := order.NewOrder(
			kernel.NewUUID(),
			number,
			cmd.DoctorID(),
			cmd.ClinicID(),
			cmd.CreatedByID(),
			now,
		)
		if err != nil {
			return nil, err
		}

		err = h.persist(ctx, newOrder)
		if err == nil {
			return newOrder, nil
		}
		if !errors.Is(err, ports.ErrOrderNumberTaken) {
			return nil, err
		}

		if attempt < maxAllocationAttempts {
			backoff := time.Duration(attempt) * allocationBackoffStep
			if sleepErr := h.sleeper.Sleep(ctx, backoff); sleepErr != nil {
				return nil, sleepErr
			}
		}
	}

	return nil, errs.NewAllocationExhaustedError("orderNumber", maxAllocationAttempts, lastCandidate)
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
