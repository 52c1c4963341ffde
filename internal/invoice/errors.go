package invoice

import (
	"errors"
	"fmt"
)

// Common invoice draft errors
var (
	// ErrUnknownTimeUnit is returned when a time unit is neither days nor hours.
	ErrUnknownTimeUnit = errors.New("unknown time unit")

	// ErrUnknownPaymentType is returned when a payment type is not one of
	// the supported payment methods.
	ErrUnknownPaymentType = errors.New("unknown payment type")

	// ErrInvalidDraft is returned when a draft document cannot be decoded.
	ErrInvalidDraft = errors.New("invalid draft document")

	// ErrUnsupportedFormat is returned when a draft document has an
	// extension other than .json, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported draft document format")
)

// DraftError wraps errors with the operation that produced them.
type DraftError struct {
	// Op is the operation that failed (e.g., "LoadDocument").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *DraftError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *DraftError) Unwrap() error {
	return e.Err
}

// NewDraftError creates a new DraftError.
func NewDraftError(op string, err error, details string) *DraftError {
	return &DraftError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// ValidationError represents a line item or payment field that is out of
// range.
type ValidationError struct {
	// Entry is the ID of the offending line item or payment.
	Entry   string
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("validation error for %s field '%s': %s (value: %v)", e.Entry, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(entry, field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Entry:   entry,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ValidationErrors collects every ValidationError found in a draft.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no validation errors"
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", errs[0].Error(), len(errs)-1)
	}
}
