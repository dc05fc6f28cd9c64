package meteo

import (
	"net/url"
	"strconv"
	"strings"
)

// RequestParams is the full parameter set for one forecast call. Hourly
// always carries every declared Kind exactly once, in declaration order.
type RequestParams struct {
	Latitude     float64
	Longitude    float64
	Hourly       []Kind
	Current      []Kind
	ForecastDays int
	PanelTilt    int
	PanelAzimuth int
}

type Option func(*RequestParams)

func WithForecastDays(days int) Option {
	return func(p *RequestParams) {
		p.ForecastDays = days
	}
}

func WithCurrent(kinds ...Kind) Option {
	return func(p *RequestParams) {
		p.Current = kinds
	}
}

// WithPanel sets the fixed solar panel orientation used for radiation
// variables. Values are supplied by the caller, never derived.
func WithPanel(tilt, azimuth int) Option {
	return func(p *RequestParams) {
		p.PanelTilt = tilt
		p.PanelAzimuth = azimuth
	}
}

// BuildRequest produces the parameter set for the given coordinate. Pure:
// no side effects, no I/O.
func BuildRequest(lat, lon float64, opts ...Option) RequestParams {
	p := RequestParams{
		Latitude:  lat,
		Longitude: lon,
		Hourly:    Kinds,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Values encodes the parameters the way the forecast endpoint expects them.
// The unixtime format keeps the hourly time axis numeric so the response
// block can be normalized into (start, end, interval).
func (p RequestParams) Values() url.Values {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', 6, 64))
	v.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', 6, 64))
	v.Set("hourly", joinParams(p.Hourly))
	if len(p.Current) > 0 {
		v.Set("current", joinParams(p.Current))
	}
	if p.ForecastDays > 0 {
		v.Set("forecast_days", strconv.Itoa(p.ForecastDays))
	}
	if p.PanelTilt != 0 {
		v.Set("tilt", strconv.Itoa(p.PanelTilt))
	}
	if p.PanelAzimuth != 0 {
		v.Set("azimuth", strconv.Itoa(p.PanelAzimuth))
	}
	v.Set("timeformat", "unixtime")
	v.Set("timezone", "UTC")
	return v
}

func joinParams(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Param
	}
	return strings.Join(names, ",")
}
