package services

import (
	"errors"
	"fmt"

	apperrors "github.com/venturelens/assessment-engine/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrSessionNotFound       = errors.New("assessment session not found")
	ErrWorksheetNotAssembled = errors.New("worksheet has not been assembled for this session")
	ErrDuplicateQuestionID   = errors.New("worksheet contains duplicate question ids")
	ErrEmptyCatalog          = errors.New("question bank is empty")
	ErrValidationFailed      = errors.New("validation failed")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// InvalidStateError indicates misuse of the API, not bad input data:
// constructing a worksheet with duplicate question ids, or submitting a
// response before a worksheet exists for the session.
type InvalidStateError struct {
	Op     string `json:"op"`
	Reason string `json:"reason"`
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state in %s: %s", e.Op, e.Reason)
}

func NewInvalidStateError(op, reason string) *InvalidStateError {
	return &InvalidStateError{Op: op, Reason: reason}
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsInvalidState checks if error represents API misuse
func IsInvalidState(err error) bool {
	var ise *InvalidStateError
	if errors.As(err, &ise) {
		return true
	}
	return errors.Is(err, ErrWorksheetNotAssembled) || errors.Is(err, ErrDuplicateQuestionID)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}
