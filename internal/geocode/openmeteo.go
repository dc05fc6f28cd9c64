package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vzahanych/meteopipe/internal/config"
	"github.com/vzahanych/meteopipe/internal/httpx"
	"github.com/vzahanych/meteopipe/pkg/telemetry"
	"go.uber.org/zap"
)

// OpenMeteoResolver resolves locations against the Open-Meteo geocoding
// search API. Unlike Nominatim it takes structured parameters (name,
// language, count, optional API key) and returns numeric coordinates.
type OpenMeteoResolver struct {
	baseURL  string
	language string
	count    int
	apiKey   string
	client   *httpx.Client
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

type openMeteoSearchResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Country   string  `json:"country"`
	} `json:"results"`
}

func NewOpenMeteoResolver(cfg config.GeocodingConfig, client *httpx.Client, logger *zap.Logger, tele *telemetry.Telemetry) *OpenMeteoResolver {
	return &OpenMeteoResolver{
		baseURL:  cfg.BaseURL,
		language: cfg.Language,
		count:    cfg.Count,
		apiKey:   cfg.APIKey,
		client:   client,
		logger:   logger,
		tele:     tele,
	}
}

func (r *OpenMeteoResolver) Name() string {
	return "open-meteo-geocoding"
}

func (r *OpenMeteoResolver) Resolve(ctx context.Context, loc Location) (Location, error) {
	tracer := r.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "open-meteo-geocoding.Resolve")
	defer span.End()

	span.SetAttributes(
		attribute.String("query", loc.Query()),
		attribute.String("provider", r.Name()),
	)

	if loc.Name == "" {
		return Location{}, fmt.Errorf("location name must not be empty")
	}

	buildRequest := func() (*http.Request, error) {
		u, err := url.Parse(fmt.Sprintf("%s/search", r.baseURL))
		if err != nil {
			return nil, err
		}

		q := u.Query()
		q.Set("name", loc.Name)
		q.Set("count", strconv.Itoa(r.count))
		q.Set("language", r.language)
		q.Set("format", "json")
		if r.apiKey != "" {
			q.Set("apikey", r.apiKey)
		}
		u.RawQuery = q.Encode()

		return http.NewRequest(http.MethodGet, u.String(), nil)
	}

	resp, err := r.client.Do(ctx, buildRequest)
	if err != nil {
		return Location{}, fmt.Errorf("open-meteo geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload openMeteoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Location{}, fmt.Errorf("open-meteo geocoding response decode failed: %w", err)
	}

	if len(payload.Results) == 0 {
		r.logger.Warn("No geocoding candidates", zap.String("query", loc.Query()))
		return Location{}, fmt.Errorf("%w for %q", ErrNoCandidates, loc.Query())
	}

	best := payload.Results[0]

	if err := checkCoordinates(best.Latitude, best.Longitude); err != nil {
		return Location{}, err
	}

	r.logger.Debug("Resolved location",
		zap.String("query", loc.Query()),
		zap.String("match", best.Name+", "+best.Country),
		zap.Float64("lat", best.Latitude),
		zap.Float64("lon", best.Longitude))

	return loc.withCoordinates(best.Latitude, best.Longitude), nil
}
