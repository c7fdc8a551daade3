// Package actor defines the permission classes of users interacting with lab
// orders. Clinic-side roles (doctors and their assistants) submit and follow
// work; lab-side roles (admins and collaborators) execute it. The order state
// machine consults these roles when gating transitions.
package actor

import (
	"fmt"

	"dentlab/internal/pkg/errs"
)

// Role represents the permission class of a user requesting an operation.
// It is a value object; the zero value (Unknown) is invalid.
type Role int

const (
	// Unknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	Unknown Role = iota

	// Doctor is a clinic-side role: the prescribing dentist who owns the order.
	Doctor

	// Assistant is a clinic-side role acting on behalf of a doctor.
	Assistant

	// Admin is a lab-side role managing the laboratory work queue.
	Admin

	// Collaborator is a lab-side role: a technician executing the work.
	Collaborator
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown:      "UNKNOWN",
		Doctor:       "DOCTOR",
		Assistant:    "ASSISTANT",
		Admin:        "ADMIN",
		Collaborator: "COLLABORATOR",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Role]string{
		Doctor:       "DOCTOR",
		Assistant:    "ASSISTANT",
		Admin:        "ADMIN",
		Collaborator: "COLLABORATOR",
	}
}

// RoleFromString parses a role from its string representation as carried on
// the wire ("DOCTOR", "ASSISTANT", "ADMIN", "COLLABORATOR").
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Unknown (0) and any other out-of-range values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the canonical name of the role.
// Implements fmt.Stringer and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsClinicSide reports whether the role belongs to the clinic (doctor or assistant).
func (r Role) IsClinicSide() bool {
	return r == Doctor || r == Assistant
}

// IsLabSide reports whether the role belongs to the laboratory (admin or collaborator).
func (r Role) IsLabSide() bool {
	return r == Admin || r == Collaborator
}
