package commands

import (
	"errors"

	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"
	"dentlab/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order to a new
// lifecycle status on behalf of a specific actor.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.StatusPendingReview, userID, actor.RoleDoctor)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
//	fmt.Printf("Order is now %s", updated.Status())
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	actorID   kernel.UUID
	actorRole actor.Role

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to change an order's status.
// Validates the order identifier, the target status, and the acting user.
// Returns an error if any validation fails.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actorID kernel.UUID,
	actorRole actor.Role,
) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
		transitionCommand.setActorID(actorID),
		transitionCommand.setActorRole(actorRole),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested destination status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// ActorID returns the identifier of the user requesting the transition.
func (c TransitionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the transition is performed under.
func (c TransitionOrderCommand) ActorRole() actor.Role {
	return c.actorRole
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *TransitionOrderCommand) setActorRole(actorRole actor.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
