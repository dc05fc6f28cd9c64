package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vzahanych/meteopipe/internal/config"
	"github.com/vzahanych/meteopipe/internal/geocode"
	"github.com/vzahanych/meteopipe/internal/meteo"
	"github.com/vzahanych/meteopipe/pkg/telemetry"
	"go.uber.org/zap"
)

// WeatherFetcher is the weather-data collaborator contract the pipeline needs.
type WeatherFetcher interface {
	Forecast(ctx context.Context, params meteo.RequestParams) (*meteo.Response, error)
}

// Report is the printable outcome for one successfully processed location.
type Report struct {
	Location    geocode.Location
	Elevation   float64
	Timezone    string
	CurrentTime int64
	Current     []meteo.Reading
	HourlyMeans []HourlyMean
	Samples     int
}

// HourlyMean is the arithmetic mean of one hourly series.
type HourlyMean struct {
	Kind  meteo.Kind
	Value float64
}

// Result pairs a location's report with its error; exactly one is set.
type Result struct {
	JobID  string
	Query  string
	Report *Report
	Err    error
}

// Pipeline runs resolve -> fetch -> extract for each configured location.
// Each location is independent and processed in its own goroutine; one
// location failing never aborts the others.
type Pipeline struct {
	resolver geocode.Resolver
	fetcher  WeatherFetcher
	cfg      config.WeatherConfig
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

func New(resolver geocode.Resolver, fetcher WeatherFetcher, cfg config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		fetcher:  fetcher,
		cfg:      cfg,
		logger:   logger,
		tele:     tele,
	}
}

// Run processes every location and returns results in input order.
func (p *Pipeline) Run(ctx context.Context, specs []config.LocationSpec) []Result {
	tracer := p.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "pipeline.Run")
	defer span.End()

	span.SetAttributes(attribute.Int("locations", len(specs)))

	results := make([]Result, len(specs))
	var wg sync.WaitGroup

	for i, spec := range specs {
		wg.Add(1)
		go func(idx int, spec config.LocationSpec) {
			defer wg.Done()

			loc := geocode.NewLocation(spec.City, spec.Country)
			jobID := uuid.NewString()
			jobLogger := p.logger.With(
				zap.String("job_id", jobID),
				zap.String("location", loc.Query()))

			report, err := p.process(ctx, loc, jobLogger)
			if err != nil {
				jobLogger.Error("Location processing failed", zap.Error(err))
			}

			results[idx] = Result{
				JobID:  jobID,
				Query:  loc.Query(),
				Report: report,
				Err:    err,
			}
		}(i, spec)
	}

	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	span.SetAttributes(attribute.Int("succeeded", succeeded))

	p.logger.Info("Pipeline run completed",
		zap.Int("locations", len(specs)),
		zap.Int("succeeded", succeeded))

	return results
}

func (p *Pipeline) process(ctx context.Context, loc geocode.Location, logger *zap.Logger) (*Report, error) {
	tracer := p.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "pipeline.process")
	defer span.End()

	span.SetAttributes(attribute.String("location", loc.Query()))

	resolved, err := p.resolver.Resolve(ctx, loc)
	if err != nil {
		return nil, err
	}

	logger.Info("Location resolved",
		zap.Float64("lat", resolved.Latitude),
		zap.Float64("lon", resolved.Longitude))

	params := meteo.BuildRequest(resolved.Latitude, resolved.Longitude,
		meteo.WithForecastDays(p.cfg.ForecastDays),
		meteo.WithCurrent(meteo.CurrentKinds...),
		meteo.WithPanel(p.cfg.PanelTilt, p.cfg.PanelAzimuth))

	resp, err := p.fetcher.Forecast(ctx, params)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Location:    resolved,
		Elevation:   resp.Elevation,
		Timezone:    resp.Timezone,
		CurrentTime: resp.Current.Time,
		Samples:     resp.Hourly.Len(),
	}

	for _, k := range meteo.CurrentKinds {
		reading, err := resp.Current.Find(k.Variable, k.Altitude)
		if err != nil {
			return nil, err
		}
		report.Current = append(report.Current, reading)
	}

	for _, k := range meteo.Kinds {
		series, err := resp.Hourly.FindKind(k)
		if err != nil {
			return nil, err
		}

		mean, err := meteo.Mean(series.Values)
		if err != nil {
			return nil, err
		}

		report.HourlyMeans = append(report.HourlyMeans, HourlyMean{Kind: k, Value: mean})
	}

	return report, nil
}
