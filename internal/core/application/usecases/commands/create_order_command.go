package commands

import (
	"errors"
	"strings"

	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPatientNameIsRequired = errors.New("patient name is required")
)

// CreateOrderCommand represents a request to register a new lab order.
// Encapsulates the ordering doctor, the clinic, the user performing the
// action, and the patient name used for order number generation.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(doctorID, clinicID, userID, "Jane Porter")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created as a draft", created.Number())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	doctorID    kernel.UUID
	clinicID    kernel.UUID
	createdByID kernel.UUID
	patientName string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new lab order.
// Validates that all identifiers are valid and the patient name is not blank.
// Returns an error if any validation fails.
func NewCreateOrderCommand(
	doctorID kernel.UUID,
	clinicID kernel.UUID,
	createdByID kernel.UUID,
	patientName string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setDoctorID(doctorID),
		orderCommand.setClinicID(clinicID),
		orderCommand.setCreatedByID(createdByID),
		orderCommand.setPatientName(patientName),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// DoctorID returns the identifier of the ordering doctor.
func (c CreateOrderCommand) DoctorID() kernel.UUID {
	return c.doctorID
}

// ClinicID returns the identifier of the clinic the order belongs to.
func (c CreateOrderCommand) ClinicID() kernel.UUID {
	return c.clinicID
}

// CreatedByID returns the identifier of the user creating the order.
func (c CreateOrderCommand) CreatedByID() kernel.UUID {
	return c.createdByID
}

// PatientName returns the patient name the order was placed for.
func (c CreateOrderCommand) PatientName() string {
	return c.patientName
}

func (c *CreateOrderCommand) setDoctorID(doctorID kernel.UUID) error {
	if err := doctorID.Validate(); err != nil {
		return err
	}

	c.doctorID = doctorID
	return nil
}

func (c *CreateOrderCommand) setClinicID(clinicID kernel.UUID) error {
	if err := clinicID.Validate(); err != nil {
		return err
	}

	c.clinicID = clinicID
	return nil
}

func (c *CreateOrderCommand) setCreatedByID(createdByID kernel.UUID) error {
	if err := createdByID.Validate(); err != nil {
		return err
	}

	c.createdByID = createdByID
	return nil
}

func (c *CreateOrderCommand) setPatientName(patientName string) error {
	if strings.TrimSpace(patientName) == "" {
		return ErrPatientNameIsRequired
	}

	c.patientName = patientName
	return nil
}
