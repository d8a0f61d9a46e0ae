package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsStandardError(t *testing.T) {
	assert.Nil(t, AsStandardError(nil))

	plain := AsStandardError(stderrors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)

	wrapped := fmt.Errorf("find profile: %w", NewSessionNotFoundError("abc"))
	stdErr := AsStandardError(wrapped)
	assert.Equal(t, ErrCodeSessionNotFound, stdErr.Code)
	assert.True(t, HasCode(wrapped, ErrCodeSessionNotFound))
	assert.False(t, HasCode(wrapped, ErrCodeSessionEnded))
}

func TestStandardError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewProfileStoreUnavailableError(cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, err.Retryable)
	assert.Contains(t, err.Error(), "PROFILE_STORE_UNAVAILABLE")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeValidationFailure, http.StatusBadRequest},
		{ErrCodeInvalidRequest, http.StatusBadRequest},
		{ErrCodeEligibilityInputInvalid, http.StatusBadRequest},
		{ErrCodeSessionNotFound, http.StatusNotFound},
		{ErrCodeLookupFailure, http.StatusNotFound},
		{ErrCodeSessionEnded, http.StatusConflict},
		{ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrCodeProfileStoreUnavailable, http.StatusServiceUnavailable},
		{ErrCodeNotificationSendFailed, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	bpmn := ConvertToBPMNError(NewLookupFailureError("phone:9999999999"))
	assert.Equal(t, "APPLICANT_NOT_FOUND", bpmn.Code)
	assert.Equal(t, 0, bpmn.Retries)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "LOOKUP_FAILURE", vars["originalErrorCode"])
	assert.Equal(t, "APPLICANT_NOT_FOUND", vars["errorCode"])

	retryable := ConvertToBPMNError(NewProfileStoreUnavailableError(stderrors.New("timeout")))
	assert.Equal(t, 3, retryable.Retries)
	assert.True(t, retryable.Retryable)

	unmapped := ConvertToBPMNError(NewInternalError(stderrors.New("x")))
	assert.Equal(t, "INTERNAL_ERROR", unmapped.Code)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SESSION", GetErrorCategory(ErrCodeSessionEnded))
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeLookupFailure))
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "UNDERWRITING", GetErrorCategory(ErrCodeEligibilityInputInvalid))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidRequest))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeCacheUnavailable))
	assert.False(t, IsRetryableErrorCode(ErrCodeValidationFailure))
}

func TestWithMetadata(t *testing.T) {
	err := NewSessionEndedError("abc").WithMetadata("phase", "ended")
	assert.Equal(t, "ended", err.Metadata["phase"])
}

func TestDecideOutcome(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		remaining int32
		expected  JobOutcome
	}{
		{
			name:      "business error is thrown",
			err:       NewUnderwritingInputInvalidError("amount"),
			remaining: 3,
			expected:  JobOutcome{Throw: true},
		},
		{
			name:      "store outage is retried",
			err:       NewProfileStoreUnavailableError(stderrors.New("connection refused")),
			remaining: 5,
			expected:  JobOutcome{Retries: 3},
		},
		{
			name:      "retries capped by broker budget",
			err:       NewProfileStoreUnavailableError(stderrors.New("connection refused")),
			remaining: 2,
			expected:  JobOutcome{Retries: 1},
		},
		{
			name:      "last attempt fails with no retries left",
			err:       NewProfileStoreUnavailableError(stderrors.New("connection refused")),
			remaining: 1,
			expected:  JobOutcome{Retries: 0},
		},
		{
			name:      "exhausted job is thrown",
			err:       NewCacheUnavailableError(stderrors.New("timeout")),
			remaining: 0,
			expected:  JobOutcome{Throw: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecideOutcome(tt.err, tt.remaining))
		})
	}
}
