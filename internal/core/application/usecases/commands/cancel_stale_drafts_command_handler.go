package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"dentlab/internal/core/domain/model/audit"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/eventbus"
	"dentlab/internal/pkg/clock"
	"dentlab/internal/pkg/errs"
)

// CancelStaleDraftsCommandHandler sweeps draft orders that were never
// submitted. Each stale draft is cancelled through the regular transition
// rules and gets an audit record; the whole sweep commits as one transaction.
//
// A draft that was touched concurrently is skipped, not failed: the sweep is
// housekeeping and must not fight live users over an order.
//
// Example:
//
//	handler := NewCancelStaleDraftsCommandHandler(uowFactory, publisher, clk, logger)
//	cmd, _ := NewCancelStaleDraftsCommand(systemID, actor.RoleAssistant, 14*24*time.Hour)
//
//	cancelled, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("stale draft sweep failed: %w", err)
//	}
//	// This would typically be called periodically by a scheduler
type CancelStaleDraftsCommandHandler struct {
	uowFactory UoWFactory
	publisher  AlertPublisher
	clock      clock.Clock
	logger     *zap.Logger
}

// NewCancelStaleDraftsCommandHandler creates a handler for the stale draft sweep.
// Requires a UoWFactory covering orders and the audit trail, an alert
// publisher, and a clock.
func NewCancelStaleDraftsCommandHandler(
	uowFactory UoWFactory,
	publisher AlertPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) CancelStaleDraftsCommandHandler {
	return CancelStaleDraftsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger,
	}
}

// Handle processes the sweep command and returns how many drafts it cancelled.
// Loads all drafts created before now-maxAge, cancels each through the state
// machine, and commits the batch atomically. Alerts to the orders' authors go
// out after the commit.
func (h *CancelStaleDraftsCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStaleDraftsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	auditRepo := uow.AuditRepository()

	cutoff := h.clock.Now().Add(-cmd.MaxAge())
	drafts, err := orderRepo.GetStaleDrafts(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := make([]*order.Order, 0, len(drafts))
	for _, draft := range drafts {
		previous := draft.Status()
		now := h.clock.Now()

		if err = draft.TransitionTo(cmd.ActorRole(), order.Cancelled, now); err != nil {
			return 0, err
		}

		err = orderRepo.UpdateStatus(ctx, draft, previous)
		if errors.Is(err, errs.ErrConcurrentModification) {
			h.logger.Info("draft changed during sweep, skipping",
				zap.String("orderId", draft.ID().String()),
			)
			continue
		}
		if err != nil {
			return 0, err
		}

		record, recordErr := audit.NewStatusChangeRecord(
			kernel.NewUUID(),
			draft.ID(),
			previous.String(),
			draft.Status().String(),
			cmd.ActorID(),
			now,
		)
		if recordErr != nil {
			return 0, recordErr
		}

		if err = auditRepo.Append(ctx, record); err != nil {
			return 0, err
		}

		cancelled = append(cancelled, draft)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, swept := range cancelled {
		h.publishCancelled(cmd, swept)
	}

	return len(cancelled), nil
}

// publishCancelled alerts the draft's author, and the doctor when different,
// that their draft expired.
func (h *CancelStaleDraftsCommandHandler) publishCancelled(
	cmd CancelStaleDraftsCommand,
	swept *order.Order,
) {
	receivers := []kernel.UUID{swept.CreatedByID()}
	if !swept.DoctorID().IsEqual(swept.CreatedByID()) {
		receivers = append(receivers, swept.DoctorID())
	}

	now := h.clock.Now()
	payload := map[string]string{
		"orderNumber": swept.Number().String(),
		"from":        order.Draft.String(),
		"to":          order.Cancelled.String(),
	}

	for _, receiver := range receivers {
		h.publisher.PublishAlert(eventbus.AlertEvent{
			Kind:       eventbus.KindOrderStatusChanged,
			OrderID:    swept.ID().String(),
			SenderID:   cmd.ActorID().String(),
			ReceiverID: receiver.String(),
			Payload:    payload,
			CreatedAt:  now,
		})
	}
}
