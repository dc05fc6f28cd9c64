package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vzahanych/meteopipe/internal/config"
	"github.com/vzahanych/meteopipe/internal/httpx"
	"github.com/vzahanych/meteopipe/pkg/telemetry"
	"go.uber.org/zap"
)

// ErrNoCandidates is returned when the geocoding provider finds no match for
// the query. Terminal for the location being processed; never retried here.
var ErrNoCandidates = errors.New("geocoding returned no candidates")

// ParseError reports a malformed numeric field in a provider response.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("geocoding: cannot parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Resolver turns an unresolved Location into one with coordinates.
// Providers return a ranked candidate list; the first candidate always wins.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, loc Location) (Location, error)
}

// NewResolver builds the configured provider, wrapped in the query cache.
func NewResolver(cfg config.GeocodingConfig, logger *zap.Logger, tele *telemetry.Telemetry) (Resolver, error) {
	httpCfg := httpx.Config{
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}

	var r Resolver
	switch cfg.Provider {
	case "nominatim":
		r = NewNominatimResolver(cfg, httpx.New("nominatim", httpCfg), logger, tele)
	case "open-meteo":
		r = NewOpenMeteoResolver(cfg, httpx.New("open-meteo-geocoding", httpCfg), logger, tele)
	default:
		return nil, fmt.Errorf("unknown geocoding provider %q", cfg.Provider)
	}

	if cfg.CacheTTL > 0 {
		r = NewCachingResolver(r, time.Duration(cfg.CacheTTL)*time.Second, logger)
	}

	return r, nil
}

// coordinates exists so resolved values can be range-checked with the shared
// validator before they leave this package.
type coordinates struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

func checkCoordinates(lat, lon float64) error {
	if err := config.GetValidator().Struct(coordinates{Latitude: lat, Longitude: lon}); err != nil {
		return fmt.Errorf("geocoding returned out-of-range coordinates (%f, %f): %w", lat, lon, err)
	}
	return nil
}
