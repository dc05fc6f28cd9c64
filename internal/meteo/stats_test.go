package meteo

import (
	"errors"
	"testing"
)

func TestMean(t *testing.T) {
	got, err := Mean([]float64{4.0, 6.0})
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	if got != 5.0 {
		t.Errorf("Expected 5.0, got %v", got)
	}
}

func TestMeanSingleValue(t *testing.T) {
	got, err := Mean([]float64{42})
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Expected 42, got %v", got)
	}
}

func TestMeanEmptySeries(t *testing.T) {
	_, err := Mean(nil)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("Expected ErrEmptySeries, got %v", err)
	}
}
