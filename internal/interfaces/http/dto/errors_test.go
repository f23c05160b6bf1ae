package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labakery/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeAlreadyExists, http.StatusConflict},
		{shared.CodeUnauthorized, http.StatusUnauthorized},
		{shared.CodeForbidden, http.StatusForbidden},
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{ErrCodeConcurrentModification, http.StatusConflict},
		{ErrCodeAccountLocked, http.StatusTooManyRequests},
		{ErrCodeFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Domain input codes fall back to 400
		{"INVALID_SHIPPING_DATE", http.StatusBadRequest},
		{"NO_ITEMS", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse("Order not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Order not found"}`, string(data))
}
