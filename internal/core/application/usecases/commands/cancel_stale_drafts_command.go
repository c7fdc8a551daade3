package commands

import (
	"errors"
	"time"

	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/pkg/guard"
)

var (
	ErrCancelStaleDraftsCommandIsNotConstructed = errors.New(
		"CancelStaleDraftsCommand must be created via NewCancelStaleDraftsCommand constructor",
	)
	ErrMaxAgeIsInvalid = errors.New("max age must be greater than 0")
)

// CancelStaleDraftsCommand represents a request to cancel draft orders that
// have been sitting untouched longer than maxAge. Executed on behalf of a
// system actor whose role must be allowed to cancel drafts.
type CancelStaleDraftsCommand struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	actorRole actor.Role
	maxAge    time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleDraftsCommand creates a command to sweep stale draft orders.
// Validates the system actor and that maxAge is positive.
func NewCancelStaleDraftsCommand(
	actorID kernel.UUID,
	actorRole actor.Role,
	maxAge time.Duration,
) (CancelStaleDraftsCommand, error) {
	sweepCommand := CancelStaleDraftsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sweepCommand.setActorID(actorID),
		sweepCommand.setActorRole(actorRole),
		sweepCommand.setMaxAge(maxAge),
	); err != nil {
		return CancelStaleDraftsCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelStaleDraftsCommandIsNotConstructed if validation fails.
func (c CancelStaleDraftsCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleDraftsCommandIsNotConstructed)
}

// ActorID returns the identifier the sweep acts under.
func (c CancelStaleDraftsCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the sweep acts under.
func (c CancelStaleDraftsCommand) ActorRole() actor.Role {
	return c.actorRole
}

// MaxAge returns how old a draft must be before it is cancelled.
func (c CancelStaleDraftsCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c *CancelStaleDraftsCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CancelStaleDraftsCommand) setActorRole(actorRole actor.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}

func (c *CancelStaleDraftsCommand) setMaxAge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return ErrMaxAgeIsInvalid
	}

	c.maxAge = maxAge
	return nil
}
