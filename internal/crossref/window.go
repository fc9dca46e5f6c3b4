package crossref

import (
	"fmt"

	"github.com/jonathan/brand-insights/internal/types"
)

// Window lengths used by trend and seasonality insights.
const (
	QuarterWindow = 3
	YearWindow    = 12
)

// TrailingAverage returns the mean of the last window points of an ordered monthly series.
func TrailingAverage(series []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("trailing average: window must be positive, got %d", window)
	}
	if len(series) < window {
		return 0, fmt.Errorf("trailing average: need %d points, have %d: %w", window, len(series), types.ErrInsufficientData)
	}
	sum := 0.0
	for _, v := range series[len(series)-window:] {
		sum += v
	}
	return sum / float64(window), nil
}

// RecentAndPrior returns the trailing window average and the average of the window immediately before it.
func RecentAndPrior(series []float64, window int) (recent, prior float64, err error) {
	if len(series) < 2*window {
		return 0, 0, fmt.Errorf("recent and prior: need %d points, have %d: %w", 2*window, len(series), types.ErrInsufficientData)
	}
	recent, err = TrailingAverage(series, window)
	if err != nil {
		return 0, 0, err
	}
	prior, err = TrailingAverage(series[:len(series)-window], window)
	if err != nil {
		return 0, 0, err
	}
	return recent, prior, nil
}
