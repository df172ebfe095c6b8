// Package guard provides a defensive-construction helper for value objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects are only created through their
// designated constructor functions. Embedding a guard in a struct lets
// Validate distinguish a properly constructed object from a zero value.
//
// Example:
//
//	type Command struct {
//	    op    string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewCommand(op string) (Command, error) {
//	    if op == "" {
//	        return Command{}, errors.New("op is required")
//	    }
//	    return Command{op: op, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Command) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it in
// the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor,
// otherwise the provided validation error (or ErrDefaultConstructorGuard
// when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
