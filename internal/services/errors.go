package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/academy-report-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Lookup errors
	ErrStudentNotFound     = errors.New("student not found")
	ErrLevelNotFound       = errors.New("no grades recorded for level")
	ErrGroupNotFound       = errors.New("group not found")
	ErrInstitutionNotFound = errors.New("institution not found")

	// Report and certificate errors
	ErrTemplateMissing      = errors.New("institution has no certificate template")
	ErrNarrativeUnavailable = errors.New("narrative generator unavailable")
	ErrGradingConfigMissing = errors.New("no grading configuration available")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrLevelNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrInstitutionNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrBadRequest) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	if errors.Is(err, ErrTemplateMissing) || errors.Is(err, ErrGradingConfigMissing) {
		return true
	}
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsUnavailable reports failures of an upstream dependency
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNarrativeUnavailable)
}
