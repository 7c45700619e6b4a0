package catalog

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when two catalog entries share an ID
var ErrDuplicateID = errors.New("duplicate catalog id")

// ErrNoSource is returned by Refresh on a store built without a source
var ErrNoSource = errors.New("catalog store has no source")

// LoadError represents a failure to load or index catalog entries
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog load failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog load failed: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
