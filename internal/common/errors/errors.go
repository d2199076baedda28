// Package errors provides the structured errors workers raise and their
// translation into BPMN errors for the process engine.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode is a stable, machine readable error identifier. Codes double as
// BPMN error codes so process models can catch them by name.
type ErrorCode string

const (
	ErrCodeIntakeValidationFailed ErrorCode = "INTAKE_VALIDATION_FAILED"
	ErrCodeInvalidInputSchema     ErrorCode = "INVALID_INPUT_SCHEMA"

	ErrCodeAssessmentNotFound    ErrorCode = "ASSESSMENT_NOT_FOUND"
	ErrCodeAssessmentStoreFailed ErrorCode = "ASSESSMENT_STORE_FAILED"
	ErrCodeHealthStoreFailed     ErrorCode = "HEALTH_STORE_FAILED"

	ErrCodeBenchmarkCatalogInvalid ErrorCode = "BENCHMARK_CATALOG_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeBusinessRule     ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the structured error every worker returns.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata sets a metadata key and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// BPMNError is thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables set alongside the error.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func NewIntakeValidationError(details string) *StandardError {
	return newError(ErrCodeIntakeValidationFailed, "Intake record failed validation", details, false, nil)
}

// NewInvalidInputSchemaError is raised when job variables do not match the
// activity's input schema.
func NewInvalidInputSchemaError(details string) *StandardError {
	return newError(ErrCodeInvalidInputSchema, "Job variables do not match the input schema", details, false, nil)
}

func NewAssessmentNotFoundError(email string) *StandardError {
	return newError(ErrCodeAssessmentNotFound, "No assessment stored for this email", fmt.Sprintf("email: %s", email), false, nil)
}

// NewAssessmentStoreError wraps a Postgres failure. Retryable.
func NewAssessmentStoreError(op string, err error) *StandardError {
	return newError(ErrCodeAssessmentStoreFailed, "Assessment store error", fmt.Sprintf("op: %s, error: %v", op, err), true, err)
}

// NewHealthStoreError wraps a Redis failure. Retryable.
func NewHealthStoreError(op string, err error) *StandardError {
	return newError(ErrCodeHealthStoreFailed, "Health store error", fmt.Sprintf("op: %s, error: %v", op, err), true, err)
}

func NewBenchmarkCatalogError(err error) *StandardError {
	return newError(ErrCodeBenchmarkCatalogInvalid, "Benchmark catalogue is invalid", err.Error(), false, err)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRule, message, details, false, nil)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true, err)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true, err)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false, nil)
}

// GetRetryCount returns how many times a job failing with code is retried
// before the error is thrown to the process.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAssessmentStoreFailed,
		ErrCodeHealthStoreFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeExternalService:
		return 3
	case ErrCodeTimeout:
		return 2
	default:
		return 0
	}
}

// IsRetryableErrorCode reports whether code is retried at all.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// ConvertToBPMNError maps a StandardError onto the BPMN error thrown to the
// engine. Non-retryable errors always carry zero retries.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// AsStandardError unwraps err to a StandardError, wrapping anything else as
// a non-retryable INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// GetErrorCategory groups codes for dashboards and logs.
func GetErrorCategory(code ErrorCode) string {
	s := string(code)
	switch {
	case strings.Contains(s, "INTAKE") || strings.Contains(s, "SCHEMA") || strings.Contains(s, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(s, "STORE") || strings.Contains(s, "DATABASE"):
		return "STORAGE"
	case strings.Contains(s, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(s, "BENCHMARK"):
		return "CONFIGURATION"
	case strings.Contains(s, "EXTERNAL") || strings.Contains(s, "TIMEOUT"):
		return "EXTERNAL"
	case strings.Contains(s, "BUSINESS"):
		return "BUSINESS"
	default:
		return "OTHER"
	}
}
