package geocode

import (
	"math"
	"testing"
)

func TestLocationQuery(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		expected string
	}{
		{"New York", "USA", "New York, USA"},
		{"Berlin", "", "Berlin"},
		{"", "USA", "USA"},
		{"", "", ""},
	}

	for _, tt := range tests {
		loc := NewLocation(tt.name, tt.country)
		if got := loc.Query(); got != tt.expected {
			t.Errorf("Query(%q, %q) = %q, expected %q", tt.name, tt.country, got, tt.expected)
		}
	}
}

func TestNewLocationUnresolved(t *testing.T) {
	loc := NewLocation("Berlin", "Germany")

	if loc.Resolved() {
		t.Error("New location should not be resolved")
	}
	if !math.IsNaN(loc.Latitude) || !math.IsNaN(loc.Longitude) {
		t.Error("Unresolved coordinates should be NaN")
	}
}

func TestWithCoordinates(t *testing.T) {
	loc := NewLocation("Berlin", "Germany").withCoordinates(52.52, 13.405)

	if !loc.Resolved() {
		t.Error("Location should be resolved after coordinates are set")
	}
	if loc.Latitude != 52.52 || loc.Longitude != 13.405 {
		t.Errorf("Coordinates not set: %v, %v", loc.Latitude, loc.Longitude)
	}
}
