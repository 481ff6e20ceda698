// Package guard provides the constructor guard pattern used by commands, queries,
// and value objects to ensure instances are only created through their designated
// constructor functions. A zero-value struct fails validation, which prevents
// accidental use of uninitialized domain objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil
// validation error. Validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was created through its
// constructor. Embed it as a private field and set it with NewConstructorGuard
// inside the constructor; the zero value marks the object as not constructed.
//
// Example:
//
//	type RefillCommand struct {
//	    barrels int
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewRefillCommand(barrels int) (RefillCommand, error) {
//	    if barrels <= 0 {
//	        return RefillCommand{}, errors.New("barrels must be positive")
//	    }
//	    return RefillCommand{barrels: barrels, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c RefillCommand) Validate() error {
//	    return c.guard.Validate(ErrRefillCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was properly constructed. Otherwise it
// returns validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
