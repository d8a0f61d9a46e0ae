package camunda

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:26500: connect: connection refused"), expected: true},
		{name: "grpc unavailable", err: errors.New("rpc error: code = Unavailable desc = transport is closing"), expected: true},
		{name: "deadline", err: errors.New("context deadline exceeded"), expected: true},
		{name: "permission denied", err: errors.New("rpc error: code = PermissionDenied"), expected: false},
		{name: "not found", err: errors.New("job not found"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetryableZeebeError(tt.err))
		})
	}
}

func TestBackoffDelay(t *testing.T) {
	rc := &RetryConfig{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, backoffDelay(rc, 0))
	assert.Equal(t, 2*time.Second, backoffDelay(rc, 1))
	assert.Equal(t, 4*time.Second, backoffDelay(rc, 2))
	assert.Equal(t, 5*time.Second, backoffDelay(rc, 3))
}
