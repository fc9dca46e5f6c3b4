package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/brand-insights/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestErrUnknownBrand(t *testing.T) {
	err := &ErrUnknownBrand{Brand: "muji"}
	assert.Equal(t, "unknown brand: muji", err.Error())
	assert.ErrorIs(t, err, types.ErrUnknownKey)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "wrapped unknown key",
			err:      fmt.Errorf("brand profile: %w", types.ErrUnknownKey),
			expected: http.StatusNotFound,
		},
		{
			name:     "schema violation",
			err:      &types.SchemaViolation{Source: "ai-sov.json"},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "wrapped schema violation",
			err:      fmt.Errorf("failed to reload: %w", &types.SchemaViolation{Source: "trend.json"}),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "not ready",
			err:      ErrNotReady,
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "cancelled",
			err:      context.Canceled,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "generic",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
