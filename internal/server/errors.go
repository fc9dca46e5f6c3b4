package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/brand-insights/internal/types"
)

// ErrNotReady means no dataset has been loaded successfully yet.
var ErrNotReady = errors.New("dataset not loaded")

// ErrUnknownBrand indicates a request for a brand outside the roster.
type ErrUnknownBrand struct {
	Brand string
}

func (e *ErrUnknownBrand) Error() string {
	return fmt.Sprintf("unknown brand: %s", e.Brand)
}

func (e *ErrUnknownBrand) Unwrap() error {
	return types.ErrUnknownKey
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrUnknownKey):
		return http.StatusNotFound
	case types.IsSchemaViolation(err), errors.Is(err, ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
