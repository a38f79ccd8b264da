package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/theoremus-urban-solutions/metrolive/metrics"
)

// ErrCycleInFlight reports an attempt to start a poll cycle while another is
// still running.
var ErrCycleInFlight = errors.New("poll cycle already in flight")

// Poller refreshes the snapshot store on a fixed cadence. It is the only
// writer; all staleness and failure policy lives here, never in handlers.
type Poller struct {
	fetcher      Fetcher
	store        *Store
	interval     time.Duration
	fetchTimeout time.Duration
	col          *metrics.Collector
	log          zerolog.Logger

	// busy is the single-flight gate: a tick arriving while a cycle is in
	// flight is skipped, not queued, so publishes can never interleave.
	busy atomic.Bool
}

func NewPoller(fetcher Fetcher, store *Store, interval, fetchTimeout time.Duration, col *metrics.Collector, log zerolog.Logger) *Poller {
	return &Poller{
		fetcher:      fetcher,
		store:        store,
		interval:     interval,
		fetchTimeout: fetchTimeout,
		col:          col,
		log:          log,
	}
}

// RunOnce executes a single poll cycle synchronously. It is called once at
// startup so the first served request has real data when upstream is healthy.
func (p *Poller) RunOnce(ctx context.Context) error {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrCycleInFlight
	}
	defer p.busy.Store(false)
	p.cycle(ctx)
	return nil
}

// Run polls until ctx is cancelled. Each tick attempts to acquire the
// single-flight gate; a cycle slower than the interval causes ticks to be
// dropped rather than cycles to pile up.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.busy.CompareAndSwap(false, true) {
				p.col.SkippedTicks.Inc()
				p.log.Debug().Msg("poll tick skipped: cycle in flight")
				continue
			}
			go func() {
				defer p.busy.Store(false)
				p.cycle(ctx)
			}()
		}
	}
}

// cycle fetches both feeds, decodes them, and publishes at most one new
// snapshot. The two feeds are independent: a failure on one keeps that field
// at its previous value while the other still refreshes. Before the first
// successful decode nothing is published, so the store stays not ready.
func (p *Poller) cycle(ctx context.Context) {
	started := time.Now()

	var prev Snapshot
	prevReady := false
	if cur, err := p.store.Current(); err == nil {
		prev = *cur
		prevReady = true
	}

	var vpData, tuData []byte
	var vpErr, tuErr error
	wg := conc.NewWaitGroup()
	wg.Go(func() {
		fctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
		vpData, vpErr = p.fetcher.FetchVehiclePositions(fctx)
	})
	wg.Go(func() {
		fctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
		tuData, tuErr = p.fetcher.FetchTripUpdates(fctx)
	})
	wg.Wait()

	next := &Snapshot{
		CapturedAt:       time.Now(),
		VehiclesAt:       prev.VehiclesAt,
		TripUpdatesAt:    prev.TripUpdatesAt,
		VehiclePositions: prev.VehiclePositions,
		TripUpdates:      prev.TripUpdates,
	}

	refreshed := false
	if vpErr != nil {
		p.col.PollCycles.WithLabelValues("vehicle_positions", "fetch_error").Inc()
		p.log.Warn().Err(vpErr).Msg("vehicle position fetch failed, keeping previous value")
	} else if ts, reports, err := DecodeVehiclePositions(vpData); err != nil {
		p.col.PollCycles.WithLabelValues("vehicle_positions", "decode_error").Inc()
		p.log.Warn().Err(err).Msg("vehicle position decode failed, keeping previous value")
	} else {
		next.VehiclesAt = ts
		next.VehiclePositions = reports
		refreshed = true
		p.col.PollCycles.WithLabelValues("vehicle_positions", "ok").Inc()
		p.col.LastFeedUpdate.WithLabelValues("vehicle_positions").Set(float64(ts))
	}

	if tuErr != nil {
		p.col.PollCycles.WithLabelValues("trip_updates", "fetch_error").Inc()
		p.log.Warn().Err(tuErr).Msg("trip update fetch failed, keeping previous value")
	} else if ts, reports, err := DecodeTripUpdates(tuData); err != nil {
		p.col.PollCycles.WithLabelValues("trip_updates", "decode_error").Inc()
		p.log.Warn().Err(err).Msg("trip update decode failed, keeping previous value")
	} else {
		next.TripUpdatesAt = ts
		next.TripUpdates = reports
		refreshed = true
		p.col.PollCycles.WithLabelValues("trip_updates", "ok").Inc()
		p.col.LastFeedUpdate.WithLabelValues("trip_updates").Set(float64(ts))
	}

	// Until at least one feed has ever decoded there is nothing real to serve.
	// Publishing here would replace "not yet available" with an empty snapshot
	// that reads as "zero vehicles running".
	if !prevReady && !refreshed {
		p.log.Warn().Msg("no feed decoded yet, staying not ready")
		return
	}

	p.store.Publish(next)
	p.col.SnapshotVehicles.Set(float64(len(next.VehiclePositions)))
	p.col.SnapshotTripUpdates.Set(float64(len(next.TripUpdates)))

	p.log.Debug().
		Int("vehicles", len(next.VehiclePositions)).
		Int("trip_updates", len(next.TripUpdates)).
		Str("duration", time.Since(started).String()).
		Msg("poll cycle published")
}
