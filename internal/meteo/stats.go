package meteo

import "errors"

// ErrEmptySeries is returned when an aggregation is asked for zero samples.
var ErrEmptySeries = errors.New("empty series")

// Mean returns the arithmetic mean of the values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}
