package persona

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested persona is not in the store.
var ErrNotFound = errors.New("persona not found")

// ValidationError reports a missing required field on a save or import.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("persona %s is required", e.Field)
}

// EmptyInputError reports an explicit action invoked without the input it
// needs (empty name, summary, document or topic).
type EmptyInputError struct {
	Input string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Input)
}

// GatewayError wraps a failed or unparseable AI gateway call.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// StorageError wraps a failed persistence read or write. The store keeps
// operating in memory after one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
