package commands_test

import (
	"testing"

	"dentlab/internal/core/application/usecases/commands"
	"dentlab/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_Success(t *testing.T) {
	doctorID := kernel.NewUUID()
	clinicID := kernel.NewUUID()
	createdByID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(doctorID, clinicID, createdByID, "Jane Porter")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.True(t, cmd.DoctorID().IsEqual(doctorID))
	require.True(t, cmd.ClinicID().IsEqual(clinicID))
	require.True(t, cmd.CreatedByID().IsEqual(createdByID))
	require.Equal(t, "Jane Porter", cmd.PatientName())
}

func TestNewCreateOrderCommand_InvalidDoctorID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), "Jane Porter")
	require.Error(t, err)
}

func TestNewCreateOrderCommand_InvalidClinicID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), "Jane Porter")
	require.Error(t, err)
}

func TestNewCreateOrderCommand_InvalidCreatedByID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, "Jane Porter")
	require.Error(t, err)
}

func TestNewCreateOrderCommand_BlankPatientName(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "   ")
	require.ErrorIs(t, err, commands.ErrPatientNameIsRequired)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
