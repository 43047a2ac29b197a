package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel error kinds. Use errors.Is() to check these.
var (
	// ErrValidation indicates the input was rejected before touching the store.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested book does not exist.
	ErrNotFound = errors.New("book not found")

	// ErrStorage indicates the store failed; the catalogue is unchanged.
	ErrStorage = errors.New("storage failure")
)

// ValidationError lists the rejected fields with a human-readable message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StorageError wraps a persistence failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}
