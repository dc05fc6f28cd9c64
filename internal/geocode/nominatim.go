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

// NominatimResolver resolves locations against an OSM Nominatim instance.
// Nominatim takes a single free-text query and returns candidates with
// latitude/longitude encoded as strings.
type NominatimResolver struct {
	baseURL string
	limit   int
	client  *httpx.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

type nominatimCandidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewNominatimResolver(cfg config.GeocodingConfig, client *httpx.Client, logger *zap.Logger, tele *telemetry.Telemetry) *NominatimResolver {
	return &NominatimResolver{
		baseURL: cfg.BaseURL,
		limit:   cfg.Count,
		client:  client,
		logger:  logger,
		tele:    tele,
	}
}

func (r *NominatimResolver) Name() string {
	return "nominatim"
}

func (r *NominatimResolver) Resolve(ctx context.Context, loc Location) (Location, error) {
	tracer := r.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "nominatim.Resolve")
	defer span.End()

	query := loc.Query()
	span.SetAttributes(
		attribute.String("query", query),
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
		q.Set("q", query)
		q.Set("format", "jsonv2")
		q.Set("limit", strconv.Itoa(r.limit))
		u.RawQuery = q.Encode()

		req, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		// Nominatim's usage policy requires an identifying User-Agent.
		req.Header.Set("User-Agent", "meteopipe/1.0")
		return req, nil
	}

	resp, err := r.client.Do(ctx, buildRequest)
	if err != nil {
		return Location{}, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	var candidates []nominatimCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return Location{}, fmt.Errorf("nominatim response decode failed: %w", err)
	}

	if len(candidates) == 0 {
		r.logger.Warn("No geocoding candidates", zap.String("query", query))
		return Location{}, fmt.Errorf("%w for %q", ErrNoCandidates, query)
	}

	// Candidates are ranked by relevance; the first one wins.
	best := candidates[0]

	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return Location{}, &ParseError{Field: "lat", Value: best.Lat, Err: err}
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return Location{}, &ParseError{Field: "lon", Value: best.Lon, Err: err}
	}

	if err := checkCoordinates(lat, lon); err != nil {
		return Location{}, err
	}

	r.logger.Debug("Resolved location",
		zap.String("query", query),
		zap.String("match", best.DisplayName),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return loc.withCoordinates(lat, lon), nil
}
