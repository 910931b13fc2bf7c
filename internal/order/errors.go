package order

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned before any storage write is attempted.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrProductMissing means a cart line referenced a product that was
	// deleted between pricing and checkout.
	ErrProductMissing = errors.New("product no longer exists")
)

// CreationError wraps a storage failure during the order transaction. The
// whole transaction has been rolled back by the time it is returned.
type CreationError struct {
	Step string
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("order creation failed at %s: %v", e.Step, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

func creationErr(step string, err error) error {
	return &CreationError{Step: step, Err: err}
}
