package meteo

import (
	"reflect"
	"testing"
)

func TestBuildRequestIncludesEveryKindOnce(t *testing.T) {
	params := BuildRequest(52.54, 13.41)

	if len(params.Hourly) != len(Kinds) {
		t.Fatalf("Expected %d hourly kinds, got %d", len(Kinds), len(params.Hourly))
	}

	seen := make(map[string]int)
	for i, k := range params.Hourly {
		seen[k.Param]++
		if k != Kinds[i] {
			t.Errorf("Hourly[%d] = %v, expected %v (declaration order)", i, k, Kinds[i])
		}
	}
	for param, count := range seen {
		if count != 1 {
			t.Errorf("Kind %s requested %d times", param, count)
		}
	}
}

func TestBuildRequestIsPure(t *testing.T) {
	a := BuildRequest(40.7128, -74.0060, WithForecastDays(7), WithCurrent(TempAir, RelHum))
	b := BuildRequest(40.7128, -74.0060, WithForecastDays(7), WithCurrent(TempAir, RelHum))

	if !reflect.DeepEqual(a, b) {
		t.Error("BuildRequest should be deterministic for identical inputs")
	}
}

func TestRequestParamsValues(t *testing.T) {
	params := BuildRequest(52.54, 13.41,
		WithForecastDays(3),
		WithCurrent(TempAir, RelHum),
		WithPanel(30, 180))

	v := params.Values()

	if got := v.Get("latitude"); got != "52.540000" {
		t.Errorf("latitude = %q", got)
	}
	if got := v.Get("hourly"); got != "temperature_2m,relative_humidity_2m,dew_point_2m,surface_pressure,wind_speed_10m,soil_temperature_54cm,precipitation,shortwave_radiation" {
		t.Errorf("hourly = %q", got)
	}
	if got := v.Get("current"); got != "temperature_2m,relative_humidity_2m" {
		t.Errorf("current = %q", got)
	}
	if got := v.Get("forecast_days"); got != "3" {
		t.Errorf("forecast_days = %q", got)
	}
	if got := v.Get("tilt"); got != "30" {
		t.Errorf("tilt = %q", got)
	}
	if got := v.Get("azimuth"); got != "180" {
		t.Errorf("azimuth = %q", got)
	}
	if got := v.Get("timeformat"); got != "unixtime" {
		t.Errorf("timeformat = %q", got)
	}
}

func TestRequestParamsValuesOmitsUnsetAux(t *testing.T) {
	v := BuildRequest(0, 0).Values()

	if v.Has("forecast_days") || v.Has("tilt") || v.Has("azimuth") || v.Has("current") {
		t.Error("unset auxiliary parameters should not be encoded")
	}
}
