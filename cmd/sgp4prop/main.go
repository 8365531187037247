// Command sgp4prop propagates satellite catalogs with SGP4/SDP4.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akhenakh/sgp4sdp4"
	"github.com/akhenakh/sgp4sdp4/internal/catalog"
	"github.com/akhenakh/sgp4sdp4/internal/config"
	"github.com/akhenakh/sgp4sdp4/internal/metrics"
)

var (
	v       = config.New()
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "sgp4prop",
	Short: "Propagate satellite element sets with SGP4/SDP4",
	Long: `
Propagate NORAD two-line element sets or OMM JSON catalogs with the SGP4
(near-earth) and SDP4 (deep-space) models.

Settings come from flags, from the environment (SGP4PROP_ prefix, with
dots replaced by underscores, e.g. SGP4PROP_LOG_LEVEL) and from an
optional config file given with --config.
`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (TOML, YAML or JSON)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")
	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.format", pf.Lookup("log-format"))
	mustBind("metrics.addr", pf.Lookup("metrics-addr"))

	rootCmd.AddCommand(ephemCmd)
	rootCmd.AddCommand(infoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, the logger and the catalog named by the
// first argument or the catalog key.
func setup(args []string) (*config.Config, *slog.Logger, []sgp4sdp4.Elements, error) {
	if len(args) > 0 {
		v.Set("catalog", args[0])
	}
	cfg, err := config.Load(v, cfgFile, time.Now())
	if err != nil {
		return nil, nil, nil, err
	}
	logger := cfg.NewLogger(os.Stderr)

	if cfg.Catalog == "" {
		return nil, nil, nil, errors.New("no catalog given")
	}
	sats, err := catalog.Load(cfg.Catalog, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	metrics.SetCatalogSize(len(sats))
	logger.Info("loaded catalog", "path", cfg.Catalog, "satellites", len(sats))
	return cfg, logger, sats, nil
}

// serveMetrics exposes the metrics endpoint until ctx is done.
func serveMetrics(ctx context.Context, addr string, logger *slog.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
