package reconcile

import (
	"errors"
	"fmt"
)

// NotFoundError means a referenced product, option or attribute key does not
// exist. It aborts processing for that entity only, never the batch.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError wraps a uniqueness rejection from the store, e.g. a duplicate
// SKU. Counted per variant, processing continues.
type ConflictError struct {
	Op  string
	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: conflict: %v", e.Op, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// ValidationError covers malformed inputs to a run, e.g. an empty option id
// passed to safe deletion.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ProtectedEntityError reports variants excluded from deletion because order
// line items reference them. It is carried in reports, not raised, since
// deleting the safe subset is the intended outcome.
type ProtectedEntityError struct {
	VariantIDs []string
}

func (e *ProtectedEntityError) Error() string {
	return fmt.Sprintf("%d variants protected by sales history", len(e.VariantIDs))
}
