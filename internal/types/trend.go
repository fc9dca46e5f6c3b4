//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strconv"
	"time"
)

// Trend holds relative monthly search interest per brand and its seasonality indices.
type Trend struct {
	// Start is the month of the first monthly point ("YYYY-MM"). Optional.
	Start       string                        `json:"start,omitempty" validate:"omitempty,datetime=2006-01"`
	Monthly     map[string][]float64          `json:"monthly" validate:"required"`
	Seasonality map[string]map[string]float64 `json:"seasonality" validate:"required"`
}

// ParseMonthKey converts a seasonality month key ("1".."12", "01".."12") to a calendar month.
func ParseMonthKey(key string) (time.Month, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	if n < 1 || n > 12 {
		return 0, fmt.Errorf("month key %q out of range", key)
	}
	return time.Month(n), nil
}

// MonthLabel is the label used for calendar months in insight output.
func MonthLabel(m time.Month) string {
	return m.String()
}
