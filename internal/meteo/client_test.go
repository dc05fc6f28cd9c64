package meteo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vzahanych/meteopipe/internal/config"
	"github.com/vzahanych/meteopipe/pkg/telemetry"
)

const forecastFixture = `{
	"latitude": 52.52,
	"longitude": 13.42,
	"elevation": 38.0,
	"timezone": "UTC",
	"timezone_abbreviation": "UTC",
	"utc_offset_seconds": 0,
	"hourly": {
		"time": [1700000000, 1700003600, 1700007200],
		"temperature_2m": [10.0, 11.5, 9.25],
		"relative_humidity_2m": [60, 62, 64],
		"dew_point_2m": [4.1, 4.3, 4.0],
		"surface_pressure": [1013.2, 1013.0, 1012.8],
		"wind_speed_10m": [12.0, 14.5, 11.0],
		"soil_temperature_54cm": [8.0, 8.0, 8.1],
		"precipitation": [0.0, null, 0.4],
		"shortwave_radiation": [0.0, 15.2, 120.5]
	},
	"current": {
		"time": 1700000000,
		"temperature_2m": 10.7,
		"relative_humidity_2m": 61
	}
}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(config.WeatherConfig{
		BaseURL: baseURL,
		Timeout: 5,
		Retries: 0,
	}, zaptest.NewLogger(t), &telemetry.Telemetry{})
}

func TestClientForecast(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	params := BuildRequest(52.52, 13.42, WithCurrent(TempAir, RelHum))

	resp, err := client.Forecast(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 52.52, resp.Latitude)
	assert.Equal(t, 38.0, resp.Elevation)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Contains(t, query, "timeformat=unixtime")

	// Series come back in declaration order.
	require.Len(t, resp.Hourly.Series, len(Kinds))
	for i, k := range Kinds {
		assert.Equal(t, k.Variable, resp.Hourly.Series[i].Variable)
		assert.Equal(t, k.Altitude, resp.Hourly.Series[i].Altitude)
	}

	temp, err := resp.Hourly.FindAt(VarTemperature, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{10.0, 11.5, 9.25}, temp.Values)

	// Nulls become NaN without shortening the series.
	precip, err := resp.Hourly.Find(VarPrecipitation)
	require.NoError(t, err)
	require.Len(t, precip.Values, 3)
	assert.True(t, math.IsNaN(precip.Values[1]))

	// Time axis normalized from the decoded samples.
	assert.Equal(t, int64(1700000000), resp.Hourly.Start)
	assert.Equal(t, int64(3600), resp.Hourly.Interval)
	assert.Equal(t, 3, resp.Hourly.Len())

	current, err := resp.Current.Find(VarTemperature, 2)
	require.NoError(t, err)
	assert.Equal(t, 10.7, current.Value)
}

func TestClientForecastOmittedVariable(t *testing.T) {
	// Collaborator drops a requested variable: decoding succeeds, extraction
	// reports the mismatch.
	payload := `{
		"latitude": 1, "longitude": 2, "elevation": 3,
		"hourly": {
			"time": [1700000000, 1700003600],
			"precipitation": [0.1, 0.2]
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	resp, err := client.Forecast(context.Background(), BuildRequest(1, 2))
	require.NoError(t, err)

	_, err = resp.Hourly.FindAt(VarTemperature, 2)
	var notFound *VariableNotFoundError
	require.ErrorAs(t, err, &notFound)

	precip, err := resp.Hourly.FindKind(Precipitation)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, precip.Values)
}

func TestClientForecastBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Forecast(context.Background(), BuildRequest(1, 2))
	require.Error(t, err)
}
