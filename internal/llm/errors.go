package llm

import (
	"errors"
	"fmt"
)

// ErrUnknownTitle is returned when the model does not recognize the question
var ErrUnknownTitle = errors.New("model does not know the problem title")

// ErrBudgetExhausted is returned when the fallback call budget is spent
var ErrBudgetExhausted = errors.New("fallback call budget exhausted")

// APICallError represents an error calling the model provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the model response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse failed: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
