package airfoil

import (
	"errors"
	"fmt"
	"math"
)

// DomainError reports numeric input outside the model's valid domain, such as
// a non-positive chord or Reynolds number or a NaN angle.
type DomainError struct {
	// Field names the offending input
	Field string

	// Value is the rejected value
	Value float64

	// Reason describes the violated constraint
	Reason string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// IsDomainError checks if an error is a DomainError and returns it.
func IsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Finite returns a DomainError if v is NaN or infinite.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &DomainError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	return nil
}

// Positive returns a DomainError unless v is finite and greater than zero.
func Positive(field string, v float64) error {
	return positive(field, v)
}

func positive(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &DomainError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}
