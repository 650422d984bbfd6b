package tracker

import (
	"context"
	"sync"
	"sync/atomic"

	"SaaSTracker/internal/model"
	"SaaSTracker/internal/sectors"
	"SaaSTracker/internal/viewstate"

	"github.com/rs/zerolog"
)

// Loader produces a fresh dataset. collector.Collector satisfies it.
type Loader interface {
	Collect(ctx context.Context) (*model.Dataset, error)
}

// Sink receives every dashboard committed by a successful reload.
type Sink interface {
	Record(ctx context.Context, d Dashboard) error
}

// Service owns the current dataset and view state and rebuilds the dashboard
// when either changes.
type Service struct {
	loader Loader
	reg    *sectors.Registry
	views  *viewstate.Store
	sink   Sink
	opts   Options
	log    zerolog.Logger

	started atomic.Uint64

	mu        sync.RWMutex
	committed uint64
	dataset   *model.Dataset
	loadErr   error
	dash      Dashboard

	// recMu is held across sink.Record so recordings land in generation order.
	recMu    sync.Mutex
	recorded uint64
}

// NewService creates a Service. sink may be nil. Until the first reload the
// dashboard reports an empty store.
func NewService(loader Loader, reg *sectors.Registry, views *viewstate.Store, sink Sink, opts Options, log zerolog.Logger) *Service {
	s := &Service{
		loader: loader,
		reg:    reg,
		views:  views,
		sink:   sink,
		opts:   opts,
		log:    log.With().Str("component", "tracker").Logger(),
	}
	s.dash = Build(nil, reg, views.Get(), opts)
	return s
}

// Reload collects a new dataset and commits it unless a later reload has
// already committed. A failed load keeps the last good dataset when there is
// one; otherwise the dashboard switches to the error status.
func (s *Service) Reload(ctx context.Context) (Dashboard, error) {
	gen := s.started.Add(1)
	ds, err := s.loader.Collect(ctx)

	s.mu.Lock()
	if gen < s.committed {
		dash, latest := s.dash, s.committed
		s.mu.Unlock()
		s.log.Debug().Uint64("generation", gen).Uint64("committed", latest).Msg("discarding stale load")
		return dash, err
	}
	s.committed = gen

	if err != nil {
		s.loadErr = err
		if s.dataset == nil {
			s.dash = Failed(err, s.reg, s.views.Get())
		}
		dash := s.dash
		s.mu.Unlock()
		s.log.Error().Err(err).Uint64("generation", gen).Msg("reload failed")
		return dash, err
	}

	if ds == nil {
		ds = &model.Dataset{}
	}
	s.dataset = ds
	s.loadErr = nil
	s.dash = Build(ds, s.reg, s.views.Get(), s.opts)
	dash := s.dash
	s.mu.Unlock()

	s.log.Info().
		Uint64("generation", gen).
		Str("load_id", ds.LoadID).
		Str("status", string(dash.Status)).
		Int("columns", len(dash.Tracker.Columns)).
		Msg("dashboard reloaded")

	s.record(ctx, gen, dash)
	return dash, nil
}

// record passes dash to the sink unless a newer generation was already recorded.
func (s *Service) record(ctx context.Context, gen uint64, dash Dashboard) {
	if s.sink == nil {
		return
	}
	s.recMu.Lock()
	defer s.recMu.Unlock()
	if gen < s.recorded {
		s.log.Debug().Uint64("generation", gen).Uint64("recorded", s.recorded).Msg("skipping stale recording")
		return
	}
	s.recorded = gen
	if err := s.sink.Record(ctx, dash); err != nil {
		s.log.Error().Err(err).Msg("failed to record dashboard")
	}
}

// Current returns the latest committed dashboard.
func (s *Service) Current() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dash
}

// LastError returns the error of the latest committed load, if it failed.
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Dataset returns the last successfully loaded dataset, or nil.
func (s *Service) Dataset() *model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Dispatch applies a view action and rebuilds the dashboard from the current
// dataset without reloading it.
func (s *Service) Dispatch(a viewstate.Action) (Dashboard, error) {
	view, err := s.views.Dispatch(a)
	if err != nil {
		return s.Current(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dataset == nil && s.loadErr != nil {
		s.dash = Failed(s.loadErr, s.reg, view)
	} else {
		s.dash = Build(s.dataset, s.reg, view, s.opts)
	}
	return s.dash, nil
}

// Summary returns the sector overview of the current dashboard.
func (s *Service) Summary() model.Summary {
	return s.Current().Summary
}
