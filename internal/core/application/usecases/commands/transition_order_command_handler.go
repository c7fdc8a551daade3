package commands

import (
	"context"

	"go.uber.org/zap"

	"dentlab/internal/core/domain/model/audit"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/eventbus"
	"dentlab/internal/pkg/clock"
)

// TransitionOrderCommandHandler handles order lifecycle transitions.
// Loads the order, applies the transition under the role rules, persists the
// new status together with an audit record in one transaction, and then
// notifies the affected users.
//
// The status write is conditional on the status the order was loaded with, so
// two concurrent transitions can never both win: the loser gets
// *errs.ConcurrentModificationError and nothing is persisted for it.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  AlertPublisher
	recipients RecipientDirectory
	clock      clock.Clock
	logger     *zap.Logger
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
// Requires a UoWFactory covering orders and the audit trail, an alert
// publisher, a recipient directory for lab-side addressing, and a clock.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	publisher AlertPublisher,
	recipients RecipientDirectory,
	clk clock.Clock,
	logger *zap.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		recipients: recipients,
		clock:      clk,
		logger:     logger,
	}
}

// Handle processes the transition command.
// The status change and its audit record commit atomically. Alert publishing
// happens after the commit and never fails the command: the transition is
// authoritative, delivery is best effort.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	now := h.clock.Now()
	if err = aggregate.TransitionTo(cmd.ActorRole(), cmd.Target(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, previous); err != nil {
		return nil, err
	}

	record, err := audit.NewStatusChangeRecord(
		kernel.NewUUID(),
		aggregate.ID(),
		previous.String(),
		aggregate.Status().String(),
		cmd.ActorID(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.AuditRepository().Append(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishStatusChange(ctx, cmd, aggregate, previous)

	return aggregate, nil
}

func (h *TransitionOrderCommandHandler) publishStatusChange(
	ctx context.Context,
	cmd TransitionOrderCommand,
	aggregate *order.Order,
	previous order.Status,
) {
	receivers := h.resolveReceivers(ctx, cmd, aggregate)
	if len(receivers) == 0 {
		return
	}

	now := h.clock.Now()
	payload := map[string]string{
		"orderNumber": aggregate.Number().String(),
		"from":        previous.String(),
		"to":          aggregate.Status().String(),
	}

	for _, receiver := range receivers {
		h.publisher.PublishAlert(eventbus.AlertEvent{
			Kind:       eventbus.KindOrderStatusChanged,
			OrderID:    aggregate.ID().String(),
			SenderID:   cmd.ActorID().String(),
			ReceiverID: receiver.String(),
			Payload:    payload,
			CreatedAt:  now,
		})
	}
}

// resolveReceivers picks the opposite side of the transition: clinic-side
// actors alert the lab staff, lab-side actors alert the ordering doctor and
// the order's author. The acting user never alerts themselves.
func (h *TransitionOrderCommandHandler) resolveReceivers(
	ctx context.Context,
	cmd TransitionOrderCommand,
	aggregate *order.Order,
) []kernel.UUID {
	var candidates []kernel.UUID
	if cmd.ActorRole().IsClinicSide() {
		labStaff, err := h.recipients.LabRecipients(ctx)
		if err != nil {
			h.logger.Warn("resolving lab recipients failed, alert skipped",
				zap.String("orderId", aggregate.ID().String()),
				zap.Error(err),
			)
			return nil
		}
		candidates = labStaff
	} else {
		candidates = []kernel.UUID{aggregate.DoctorID(), aggregate.CreatedByID()}
	}

	seen := make(map[string]struct{}, len(candidates))
	receivers := make([]kernel.UUID, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.IsEqual(cmd.ActorID()) {
			continue
		}
		if _, ok := seen[candidate.String()]; ok {
			continue
		}
		seen[candidate.String()] = struct{}{}
		receivers = append(receivers, candidate)
	}

	return receivers
}
