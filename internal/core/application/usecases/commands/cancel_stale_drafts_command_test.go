package commands_test

import (
	"testing"
	"time"

	"dentlab/internal/core/application/usecases/commands"
	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewCancelStaleDraftsCommand_Success(t *testing.T) {
	actorID := kernel.NewUUID()

	cmd, err := commands.NewCancelStaleDraftsCommand(actorID, actor.Assistant, 14*24*time.Hour)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.True(t, cmd.ActorID().IsEqual(actorID))
	require.Equal(t, actor.Assistant, cmd.ActorRole())
	require.Equal(t, 14*24*time.Hour, cmd.MaxAge())
}

func TestNewCancelStaleDraftsCommand_InvalidActorID(t *testing.T) {
	_, err := commands.NewCancelStaleDraftsCommand(kernel.UUID{}, actor.Assistant, time.Hour)
	require.Error(t, err)
}

func TestNewCancelStaleDraftsCommand_InvalidRole(t *testing.T) {
	_, err := commands.NewCancelStaleDraftsCommand(kernel.NewUUID(), actor.Unknown, time.Hour)
	require.Error(t, err)
}

func TestNewCancelStaleDraftsCommand_NonPositiveMaxAge(t *testing.T) {
	_, err := commands.NewCancelStaleDraftsCommand(kernel.NewUUID(), actor.Assistant, 0)
	require.ErrorIs(t, err, commands.ErrMaxAgeIsInvalid)
}

func TestCancelStaleDraftsCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CancelStaleDraftsCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCancelStaleDraftsCommandIsNotConstructed)
}
