// Package metrics exposes propagation counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akhenakh/sgp4sdp4"
)

var (
	propagationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sgp4sdp4_propagations_total",
			Help: "Total number of propagations.",
		},
		[]string{"regime"},
	)

	propagationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sgp4sdp4_propagation_duration_seconds",
			Help:    "Time spent propagating one satellite over a run, in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
		[]string{"regime"},
	)

	decayedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sgp4sdp4_decayed_total",
			Help: "Total number of propagations that ended inside the earth.",
		},
	)

	catalogSatellites = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sgp4sdp4_catalog_satellites",
			Help: "Number of satellites in the loaded catalog.",
		},
	)
)

func init() {
	prometheus.MustRegister(propagationsTotal)
	prometheus.MustRegister(propagationDurationSeconds)
	prometheus.MustRegister(decayedTotal)
	prometheus.MustRegister(catalogSatellites)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePropagations records n propagations of one satellite taking d overall.
func ObservePropagations(regime sgp4sdp4.Regime, n int, d time.Duration) {
	label := regime.String()
	propagationsTotal.WithLabelValues(label).Add(float64(n))
	propagationDurationSeconds.WithLabelValues(label).Observe(d.Seconds())
}

// IncDecayed records a propagation that ended inside the earth.
func IncDecayed() {
	decayedTotal.Inc()
}

// SetCatalogSize records the number of satellites loaded.
func SetCatalogSize(n int) {
	catalogSatellites.Set(float64(n))
}
