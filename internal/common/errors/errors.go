package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeValidationFailure ErrorCode = "VALIDATION_FAILURE"
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"

	ErrCodeLookupFailure           ErrorCode = "LOOKUP_FAILURE"
	ErrCodeProfileStoreUnavailable ErrorCode = "PROFILE_STORE_UNAVAILABLE"
	ErrCodeCacheUnavailable        ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionEnded    ErrorCode = "SESSION_ENDED"

	ErrCodeUnderwritingInputInvalid ErrorCode = "UNDERWRITING_INPUT_INVALID"
	ErrCodeEligibilityInputInvalid  ErrorCode = "ELIGIBILITY_INPUT_INVALID"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

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
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

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

func NewValidationFailureError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailure,
		Message:   "Input could not be understood",
		Details:   fmt.Sprintf("field: %s, %s", field, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request payload is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMethodNotAllowedError(method, path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("%s is not supported on %s", method, path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewLookupFailureError(selector string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLookupFailure,
		Message:   "Applicant profile not found",
		Details:   fmt.Sprintf("selector: %s", selector),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewProfileStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileStoreUnavailable,
		Message:   "Applicant profile store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Profile cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Conversation session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionEndedError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionEnded,
		Message:   "Conversation has ended",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnderwritingInputInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnderwritingInputInvalid,
		Message:   "Underwriting input is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewEligibilityInputInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEligibilityInputInvalid,
		Message:   "Eligibility application is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// AsStandardError returns err as a StandardError, wrapping anything else as
// an internal error.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err is a StandardError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidationFailure:        "VALIDATION_FAILURE",
	ErrCodeInvalidRequest:           "INVALID_REQUEST",
	ErrCodeLookupFailure:            "APPLICANT_NOT_FOUND",
	ErrCodeProfileStoreUnavailable:  "PROFILE_STORE_UNAVAILABLE",
	ErrCodeCacheUnavailable:         "CACHE_UNAVAILABLE",
	ErrCodeUnderwritingInputInvalid: "UNDERWRITING_INPUT_INVALID",
	ErrCodeEligibilityInputInvalid:  "ELIGIBILITY_INPUT_INVALID",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileStoreUnavailable,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeCacheUnavailable:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "PROFILE") || strings.Contains(codeStr, "LOOKUP") || strings.Contains(codeStr, "CACHE"):
		return "PROFILE"
	case strings.Contains(codeStr, "UNDERWRITING") || strings.Contains(codeStr, "ELIGIBILITY"):
		return "UNDERWRITING"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps an error code to the status the API responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailure,
		ErrCodeInvalidRequest,
		ErrCodeUnderwritingInputInvalid,
		ErrCodeEligibilityInputInvalid:
		return http.StatusBadRequest
	case ErrCodeLookupFailure, ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeSessionEnded:
		return http.StatusConflict
	case ErrCodeProfileStoreUnavailable, ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeNotificationSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
