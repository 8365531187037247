package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/akhenakh/sgp4sdp4/internal/config"
	"github.com/akhenakh/sgp4sdp4/internal/tracker"
)

// kmPerEarthRadius converts the km output to earth radii for --units er.
const kmPerEarthRadius = 6378.135

var ephemCmd = &cobra.Command{
	Use:   "ephem [catalog]",
	Short: "Write an ephemeris for every satellite of a catalog",
	Long: `
Propagate every satellite of a TLE or OMM catalog from --start over --span,
every --step, and write one row per satellite and instant.

Examples:
  # One day of 10 minute steps starting now
  sgp4prop ephem stations.txt

  # Two hours around a given time, as a table in earth radii
  sgp4prop ephem gp.json --start 2024-04-09T12:00:00Z --span 2h --step 1m --format table --units er
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEphem,
}

func init() {
	f := ephemCmd.Flags()
	f.String("start", "", "start time, RFC 3339 (default now)")
	f.Duration("span", 24*time.Hour, "time span to cover")
	f.Duration("step", 10*time.Minute, "time between rows")
	f.Int("workers", 0, "number of propagation workers (default number of CPUs)")
	f.String("format", "csv", "output format: csv or table")
	f.String("units", "km", "units: km and km/s, or er (earth radii) and er/min")
	for _, key := range []string{"start", "span", "step", "workers", "format", "units"} {
		mustBind(key, f.Lookup(key))
	}
}

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func runEphem(cmd *cobra.Command, args []string) error {
	cfg, logger, sats, err := setup(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	serveMetrics(ctx, cfg.MetricsAddr, logger)

	times := cfg.Times()
	logger.Info("propagating",
		"satellites", len(sats),
		"start", cfg.Start.Format(time.RFC3339),
		"steps", len(times),
		"workers", cfg.Workers,
	)

	pool := tracker.NewWorkerPool(cfg.Workers, logger)
	tracks, err := pool.Run(ctx, sats, times)
	if err != nil {
		return fmt.Errorf("propagation interrupted: %w", err)
	}
	return writeEphemeris(cmd.OutOrStdout(), cfg, tracks)
}

var ephemHeader = []string{
	"time", "catnr", "name", "tsince",
	"x", "y", "z", "vx", "vy", "vz",
	"phase", "lat", "lon", "alt",
}

func writeEphemeris(w io.Writer, cfg *config.Config, tracks []tracker.Track) error {
	// km and km/s, or earth radii and earth radii per minute.
	scale, vscale := 1.0, 1.0
	if cfg.Units == "er" {
		scale, vscale = 1/kmPerEarthRadius, 60/kmPerEarthRadius
	}
	f := func(x float64, prec int) string {
		return strconv.FormatFloat(x, 'f', prec, 64)
	}
	row := func(t tracker.Track, p tracker.Point) []string {
		return []string{
			p.Time.Format(time.RFC3339),
			strconv.Itoa(t.CatNr),
			t.Name,
			f(p.Tsince, 4),
			f(p.Position.X*scale, 6), f(p.Position.Y*scale, 6), f(p.Position.Z*scale, 6),
			f(p.Velocity.X*vscale, 6), f(p.Velocity.Y*vscale, 6), f(p.Velocity.Z*vscale, 6),
			f(p.Phase, 6),
			f(p.SubPoint.Latitude, 4), f(p.SubPoint.Longitude, 4), f(p.SubPoint.Altitude, 3),
		}
	}

	if cfg.Format == "table" {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		writeTabbed(tw, ephemHeader)
		for _, t := range tracks {
			for _, p := range t.Points {
				writeTabbed(tw, row(t, p))
			}
		}
		return tw.Flush()
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ephemHeader); err != nil {
		return err
	}
	for _, t := range tracks {
		for _, p := range t.Points {
			if err := cw.Write(row(t, p)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTabbed(w io.Writer, cols []string) {
	for _, c := range cols {
		fmt.Fprint(w, c, "\t")
	}
	fmt.Fprintln(w)
}
