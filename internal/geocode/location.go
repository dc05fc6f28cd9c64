package geocode

import (
	"fmt"
	"math"
	"strings"
)

// Location is a place the pipeline tracks. It starts with just a name and
// country; a Resolver fills in the coordinates exactly once, after which the
// value is treated as read-only.
type Location struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64

	resolved bool
}

func NewLocation(name, country string) Location {
	return Location{
		Name:      name,
		Country:   country,
		Latitude:  math.NaN(),
		Longitude: math.NaN(),
	}
}

// Query joins the non-empty name and country parts with ", " for display and
// for free-text geocoding queries.
func (l Location) Query() string {
	parts := make([]string, 0, 2)
	if l.Name != "" {
		parts = append(parts, l.Name)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}

// Resolved reports whether coordinates have been filled in by a Resolver.
func (l Location) Resolved() bool {
	return l.resolved
}

// ResolvedLocation constructs a Location with known coordinates, exactly as
// a Resolver would return it.
func ResolvedLocation(name, country string, lat, lon float64) Location {
	return NewLocation(name, country).withCoordinates(lat, lon)
}

// withCoordinates returns a copy with coordinates set and marked resolved.
func (l Location) withCoordinates(lat, lon float64) Location {
	l.Latitude = lat
	l.Longitude = lon
	l.resolved = true
	return l
}

func (l Location) String() string {
	if !l.resolved {
		return l.Query()
	}
	return fmt.Sprintf("%s (%.6f, %.6f)", l.Query(), l.Latitude, l.Longitude)
}
