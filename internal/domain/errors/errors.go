package errors

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("concurrent modification")
	ErrValidation         = errors.New("validation failed")

	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNoCompletedFiles  = errors.New("order has no completed files")
	ErrUnknownPackage    = errors.New("unknown package")
	ErrUnknownTemplate   = errors.New("unknown template")

	ErrNoIdentity    = errors.New("no user identity")
	ErrNoActiveOrder = errors.New("no active order")

	ErrResumeRequired = errors.New("resume upload required")
	ErrJumpNotAllowed = errors.New("jumping between steps is not allowed in this flow")
	ErrStepOutOfRange = errors.New("step index out of range")

	ErrPaymentNotAllowed = errors.New("payment not allowed")
	ErrInvalidWebhook    = errors.New("invalid webhook payload")
	ErrGateway           = errors.New("payment gateway failure")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError groups field errors. It matches ErrValidation via errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field errors were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
