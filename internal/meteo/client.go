package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vzahanych/meteopipe/internal/config"
	"github.com/vzahanych/meteopipe/internal/httpx"
	"github.com/vzahanych/meteopipe/pkg/telemetry"
	"go.uber.org/zap"
)

// Client calls the Open-Meteo forecast endpoint and normalizes its payload
// into a Response. Retry, backoff and circuit breaking live in the transport
// client, not here.
type Client struct {
	baseURL string
	client  *httpx.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewClient(cfg config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client: httpx.New("open-meteo", httpx.Config{
			Timeout:         time.Duration(cfg.Timeout) * time.Second,
			MaxRetries:      cfg.Retries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		}),
		logger: logger,
		tele:   tele,
	}
}

type forecastPayload struct {
	Latitude             float64                    `json:"latitude"`
	Longitude            float64                    `json:"longitude"`
	Elevation            float64                    `json:"elevation"`
	Timezone             string                     `json:"timezone"`
	TimezoneAbbreviation string                     `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int                        `json:"utc_offset_seconds"`
	Hourly               map[string]json.RawMessage `json:"hourly"`
	Current              map[string]json.RawMessage `json:"current"`
}

// Forecast issues one forecast call for the given parameters.
func (c *Client) Forecast(ctx context.Context, params RequestParams) (*Response, error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "open-meteo.Forecast")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", params.Latitude),
		attribute.Float64("lon", params.Longitude),
		attribute.Int("hourly_variables", len(params.Hourly)),
	)

	buildRequest := func() (*http.Request, error) {
		u, err := url.Parse(fmt.Sprintf("%s/forecast", c.baseURL))
		if err != nil {
			return nil, err
		}
		u.RawQuery = params.Values().Encode()
		return http.NewRequest(http.MethodGet, u.String(), nil)
	}

	resp, err := c.client.Do(ctx, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("forecast response decode failed: %w", err)
	}

	out := &Response{
		Latitude:             payload.Latitude,
		Longitude:            payload.Longitude,
		Elevation:            payload.Elevation,
		Timezone:             payload.Timezone,
		TimezoneAbbreviation: payload.TimezoneAbbreviation,
		UTCOffsetSeconds:     payload.UTCOffsetSeconds,
	}

	if err := decodeHourly(payload.Hourly, params.Hourly, &out.Hourly); err != nil {
		return nil, err
	}
	if err := decodeCurrent(payload.Current, params.Current, &out.Current); err != nil {
		return nil, err
	}

	c.logger.Debug("Forecast fetched",
		zap.Float64("lat", out.Latitude),
		zap.Float64("lon", out.Longitude),
		zap.Int("hourly_series", len(out.Hourly.Series)),
		zap.Int("samples", out.Hourly.Len()))

	return out, nil
}

// decodeHourly rebuilds the self-describing series collection from the named
// JSON arrays. The requested kind order fixes the series order, which keeps
// the positional-index invariant between request and response intact.
func decodeHourly(block map[string]json.RawMessage, kinds []Kind, out *Hourly) error {
	if len(block) == 0 {
		return nil
	}

	rawTimes, ok := block["time"]
	if !ok {
		return fmt.Errorf("hourly block missing time axis")
	}

	var times []int64
	if err := json.Unmarshal(rawTimes, &times); err != nil {
		return fmt.Errorf("hourly time axis decode failed: %w", err)
	}
	if len(times) > 0 {
		out.Start = times[0]
		out.Interval = 3600
		if len(times) > 1 {
			out.Interval = times[1] - times[0]
		}
		out.End = times[len(times)-1] + out.Interval
	}

	for _, k := range kinds {
		raw, ok := block[k.Param]
		if !ok {
			// Left out rather than failing here: extraction reports the
			// mismatch as VariableNotFoundError where it can be attributed.
			continue
		}

		values, err := decodeValues(raw)
		if err != nil {
			return fmt.Errorf("hourly %s decode failed: %w", k.Param, err)
		}

		out.Series = append(out.Series, Series{
			Variable: k.Variable,
			Altitude: k.Altitude,
			Values:   values,
		})
	}

	return nil
}

func decodeCurrent(block map[string]json.RawMessage, kinds []Kind, out *Current) error {
	if len(block) == 0 {
		return nil
	}

	if rawTime, ok := block["time"]; ok {
		if err := json.Unmarshal(rawTime, &out.Time); err != nil {
			return fmt.Errorf("current time decode failed: %w", err)
		}
	}

	for _, k := range kinds {
		raw, ok := block[k.Param]
		if !ok {
			continue
		}

		var value *float64
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("current %s decode failed: %w", k.Param, err)
		}

		reading := Reading{Variable: k.Variable, Altitude: k.Altitude, Value: math.NaN()}
		if value != nil {
			reading.Value = *value
		}
		out.Readings = append(out.Readings, reading)
	}

	return nil
}

// decodeValues maps JSON nulls to NaN so series keep their full length.
func decodeValues(raw json.RawMessage) ([]float64, error) {
	var boxed []*float64
	if err := json.Unmarshal(raw, &boxed); err != nil {
		return nil, err
	}

	values := make([]float64, len(boxed))
	for i, v := range boxed {
		if v == nil {
			values[i] = math.NaN()
			continue
		}
		values[i] = *v
	}
	return values, nil
}
