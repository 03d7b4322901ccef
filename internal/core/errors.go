package core

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input detected before any database
// statement runs. Nothing needs rolling back when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a *ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError means a conditional stock decrement matched zero
// rows: the product either does not exist or does not hold the requested
// quantity. The enclosing transaction has been rolled back in full.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

// PersistenceError wraps an underlying database fault. The enclosing
// transaction, if any, has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// IsNotFound reports whether err is the not-found marker returned by the
// read paths (GetInvoice, GetOrder, GetProduct).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ErrNotFound is returned by read paths when a row does not exist.
var ErrNotFound = errors.New("not found")
