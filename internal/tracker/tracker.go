// Package tracker propagates a catalog of satellites over a time grid with
// a pool of workers.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/akhenakh/sgp4sdp4"
	"github.com/akhenakh/sgp4sdp4/internal/metrics"
)

// Point is one propagated state, in km and km/s.
type Point struct {
	Time     time.Time
	Tsince   float64 // Minutes since epoch
	Position sgp4sdp4.Vector
	Velocity sgp4sdp4.Vector
	Phase    float64
	SubPoint sgp4sdp4.LatLonAlt
}

// Track is the ephemeris of one satellite.
type Track struct {
	CatNr  int
	Name   string
	Regime sgp4sdp4.Regime
	Points []Point

	// Decayed is set when the satellite fell inside the earth; Points
	// then ends with the first decayed state.
	Decayed bool

	// Geodetic altitude summary over Points, in km
	MinAltitude  float64
	MaxAltitude  float64
	MeanAltitude float64
}

type job struct {
	index    int
	elements sgp4sdp4.Elements
}

type result struct {
	index int
	track Track
}

// WorkerPool propagates satellites on a fixed number of goroutines. Each
// satellite is owned by a single worker for its whole track.
type WorkerPool struct {
	workers int
	logger  *slog.Logger
}

// NewWorkerPool creates a worker pool with the given number of workers.
func NewWorkerPool(workers int, logger *slog.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		logger:  logger,
	}
}

// Run propagates every element set to every time in times. Tracks are
// returned in the order of elements. It stops early and returns the
// context error when ctx is cancelled.
func (wp *WorkerPool) Run(ctx context.Context, elements []sgp4sdp4.Elements, times []time.Time) ([]Track, error) {
	if len(elements) == 0 {
		return nil, nil
	}

	jobs := make(chan job, wp.workers*2)
	results := make(chan result, wp.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r := result{index: j.index, track: wp.propagate(j.elements, times)}
				select {
				case results <- r:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, e := range elements {
			select {
			case jobs <- job{index: i, elements: e}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	tracks := make([]Track, len(elements))
	var decayed int
	for r := range results {
		tracks[r.index] = r.track
		if r.track.Decayed {
			decayed++
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wp.logger.Debug("propagation run complete",
		"satellites", len(elements),
		"steps", len(times),
		"decayed", decayed,
	)
	return tracks, nil
}

func (wp *WorkerPool) propagate(e sgp4sdp4.Elements, times []time.Time) Track {
	sat := sgp4sdp4.NewSatellite(e)
	track := Track{
		CatNr:  e.CatNr,
		Name:   e.Name,
		Regime: sat.Regime(),
		Points: make([]Point, 0, len(times)),
	}

	start := time.Now()
	for _, t := range times {
		tsince := sat.Tsince(t)
		st, err := sat.FindPosition(tsince)
		pos, vel := st.Km()
		track.Points = append(track.Points, Point{
			Time:     t,
			Tsince:   tsince,
			Position: pos,
			Velocity: vel,
			Phase:    st.Phase,
			SubPoint: sgp4sdp4.Geodetic(pos, sgp4sdp4.JulianDate(t)),
		})
		if err != nil {
			track.Decayed = true
			metrics.IncDecayed()
			wp.logger.Warn("satellite decayed",
				"norad_id", e.CatNr,
				"name", e.Name,
				"error", err,
			)
			break
		}
	}
	metrics.ObservePropagations(track.Regime, len(track.Points), time.Since(start))

	alts := make([]float64, len(track.Points))
	for i, p := range track.Points {
		alts[i] = p.SubPoint.Altitude
	}
	if len(alts) > 0 {
		track.MinAltitude = floats.Min(alts)
		track.MaxAltitude = floats.Max(alts)
		track.MeanAltitude = floats.Sum(alts) / float64(len(alts))
	}
	return track
}
