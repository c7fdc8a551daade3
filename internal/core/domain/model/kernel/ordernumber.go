package kernel

import (
	"fmt"

	"dentlab/internal/pkg/errs"
)

// MaxOrderNumberLength bounds the printable order number so it stays usable on
// work slips and labels.
const MaxOrderNumberLength = 32

// ErrOrderNumberIsNotConstructed indicates that an OrderNumber was not created
// through NewOrderNumber. It is returned when validating a zero-value OrderNumber.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError("OrderNumber must be created via NewOrderNumber")

// OrderNumber is a value object for the human-readable lab order number.
// The number is assigned exactly once when an order is created and is unique
// across all orders; clinics and the lab refer to work by this number rather
// than by the technical identifier.
//
// A valid order number consists of uppercase letters, digits, and dashes,
// e.g. "DL-20260901-GAR-7F3K".
//
// The zero value is invalid; construct through NewOrderNumber.
type OrderNumber struct {
	value string
	guard ConstructorGuard
}

// NewOrderNumber creates an OrderNumber after validating its format.
//
// Validation rules:
//   - must not be empty
//   - must not exceed MaxOrderNumberLength characters
//   - may contain only uppercase letters, digits, and dashes
func NewOrderNumber(value string) (OrderNumber, error) {
	if value == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if len(value) > MaxOrderNumberLength {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%q exceeds %d characters", value, MaxOrderNumberLength))
	}
	for _, r := range value {
		if !isOrderNumberRune(r) {
			return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber",
				fmt.Errorf("%q contains invalid character %q", value, r))
		}
	}

	return OrderNumber{
		value: value,
		guard: NewConstructorGuard(),
	}, nil
}

func isOrderNumberRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-':
		return true
	default:
		return false
	}
}

// String returns the printable order number.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers for equality.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate checks that the OrderNumber was properly constructed.
// Returns ErrOrderNumberIsNotConstructed for zero values.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}
