package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	resp := NewError(ErrCodeInvalidRequest, "bad payload")

	assert.Equal(t, ErrCodeInvalidRequest, resp.Error)
	assert.Equal(t, "bad payload", resp.Message)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Empty(t, resp.RequestID)
	assert.Nil(t, resp.Details)
}

func TestErrorResponse_WithRequestID(t *testing.T) {
	resp := NewError(ErrCodeInternal, "boom").WithRequestID("req-123")

	assert.Equal(t, "req-123", resp.RequestID)
	assert.Equal(t, ErrCodeInternal, resp.Error)
}

func TestErrorResponse_WithDetails(t *testing.T) {
	details := map[string]string{"field": "items"}
	resp := NewError(ErrCodeInvalidRequest, "bad payload").WithDetails(details)

	assert.Equal(t, details, resp.Details)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{status: http.StatusBadRequest, expected: ErrCodeInvalidRequest},
		{status: http.StatusNotFound, expected: ErrCodeNotFound},
		{status: http.StatusUnprocessableEntity, expected: ErrCodeInfeasible},
		{status: http.StatusTooManyRequests, expected: ErrCodeRateLimit},
		{status: http.StatusBadGateway, expected: ErrCodeUpstream},
		{status: http.StatusServiceUnavailable, expected: ErrCodeUpstream},
		{status: http.StatusGatewayTimeout, expected: ErrCodeTimeout},
		{status: http.StatusRequestTimeout, expected: ErrCodeTimeout},
		{status: http.StatusInternalServerError, expected: ErrCodeInternal},
		{status: http.StatusTeapot, expected: ErrCodeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ErrCodeFromStatus(tt.status), "status %d", tt.status)
	}
}
