// Package apperr defines the error kinds surfaced by the catalog and sale
// services. Callers discriminate with errors.As: insufficient stock is an
// expected, recoverable condition and must never be confused with a storage
// failure.
package apperr

import "fmt"

// ValidationError reports malformed or missing input fields, keyed by field
// name. It is always detected before any mutation is attempted.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) invalid", len(e.Violations))
}

// NotFoundError reports a reference to a product or sale that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InsufficientStockError reports a sale quantity exceeding the available
// stock. Available carries the current on-hand quantity for display.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// PersistenceError wraps a failed storage operation. The guarantee attached to
// it: no partial state mutation is observable after the failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
