// Package guard implements a defensive construction pattern for commands,
// queries, and value objects. Embedding a ConstructorGuard in a struct makes
// zero-value instances detectable, so code paths can insist that objects were
// built through their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures objects are only created through their designated
// constructor functions. The guard keeps an internal flag that is only set when
// the object is created through the proper constructor; any zero-value struct
// fails validation.
//
// Example usage:
//
//	var ErrCommandNotConstructed = errors.New("command must be created via its constructor")
//
//	type CreateOrderCommand struct {
//	    patientName string
//	    guard       guard.ConstructorGuard
//	}
//
//	func NewCreateOrderCommand(patientName string) (CreateOrderCommand, error) {
//	    if patientName == "" {
//	        return CreateOrderCommand{}, errors.New("patient name is required")
//	    }
//	    return CreateOrderCommand{
//	        patientName: patientName,
//	        guard:       guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c CreateOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCommandNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
// Returns nil for constructed objects. For zero-value objects it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
