package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vzahanych/meteopipe/internal/config"
	"github.com/vzahanych/meteopipe/internal/geocode"
	"github.com/vzahanych/meteopipe/internal/meteo"
	"github.com/vzahanych/meteopipe/internal/pipeline"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve the configured locations and print their weather",
	Long:  `Runs the resolve/fetch/extract pipeline once for every configured (city, country) pair and prints the results to standard output.`,
	RunE:  runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	defer func() {
		_ = tele.Shutdown(cmd.Context())
		_ = log.Sync()
	}()

	log.Info("Starting pipeline run",
		zap.String("geocoding_provider", cfg.Geocoding.Provider),
		zap.Int("locations", len(cfg.Locations)))

	resolver, err := geocode.NewResolver(cfg.Geocoding, log, tele)
	if err != nil {
		return err
	}

	client := meteo.NewClient(cfg.Weather, log, tele)
	pipe := pipeline.New(resolver, client, cfg.Weather, log, tele)

	results := pipe.Run(cmd.Context(), cfg.Locations)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Query, res.Err)
			continue
		}
		printReport(res.Report)
	}

	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("all %d locations failed", failed)
	}

	return nil
}

func printReport(r *pipeline.Report) {
	fmt.Printf("%s\n", r.Location)
	fmt.Printf("  Elevation %.0f m asl, timezone %s\n", r.Elevation, r.Timezone)

	if len(r.Current) > 0 {
		fmt.Printf("  Current (%s):\n", time.Unix(r.CurrentTime, 0).UTC().Format(time.RFC3339))
		for _, reading := range r.Current {
			fmt.Printf("    %-20s %8.2f\n", labelFor(reading.Variable, reading.Altitude), reading.Value)
		}
	}

	fmt.Printf("  Hourly means over %d samples:\n", r.Samples)
	for _, m := range r.HourlyMeans {
		fmt.Printf("    %-20s %8.2f\n", m.Kind.Param, m.Value)
	}
}

func labelFor(v meteo.Variable, altitude int) string {
	if altitude > 0 {
		return fmt.Sprintf("%s@%d", v, altitude)
	}
	return string(v)
}
