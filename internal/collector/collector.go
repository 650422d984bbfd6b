package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SaaSTracker/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options bounds how the collector talks to the store.
type Options struct {
	Timeout     time.Duration // per attempt
	Retries     int           // extra attempts after the first
	Concurrency int
	Backoff     time.Duration // doubled after each failed attempt
}

// Collector loads a complete Dataset from a snapshot store.
type Collector struct {
	Fetcher Fetcher
	Opts    Options
	log     zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, opts Options, log zerolog.Logger) *Collector {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	return &Collector{
		Fetcher: fetcher,
		Opts:    opts,
		log:     log.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
	}
}

// Collect lists the store and fetches every file concurrently. Reference
// files are optional and become nil on any failure; every daily snapshot is
// required and a failure aborts the load with an error wrapping ErrTransport.
func (c *Collector) Collect(ctx context.Context) (*model.Dataset, error) {
	names, err := withRetry(ctx, c, "listing", c.Fetcher.List)
	if err != nil {
		return nil, fmt.Errorf("list store: %w", asTransport(err))
	}

	ds := &model.Dataset{
		LoadID:   uuid.NewString(),
		LoadedAt: time.Now(),
		Files:    names,
	}
	listed := make(map[string]bool, len(names))
	var snapFiles []string
	for _, n := range names {
		listed[n] = true
		if IsSnapshotFile(n) {
			snapFiles = append(snapFiles, n)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Opts.Concurrency)

	if listed[BaselineFile] {
		g.Go(func() error {
			ds.Baseline = loadOptional[model.BaselineFile](gctx, c, BaselineFile)
			return nil
		})
	}
	if listed[LTMHighFile] {
		g.Go(func() error {
			ds.LTMHigh = loadOptional[model.LTMHighFile](gctx, c, LTMHighFile)
			return nil
		})
	}
	if listed[FundamentalsFile] {
		g.Go(func() error {
			ds.Fundamentals = loadOptional[model.FundamentalsFile](gctx, c, FundamentalsFile)
			return nil
		})
	}

	snaps := make([]*model.Snapshot, len(snapFiles))
	for i, name := range snapFiles {
		g.Go(func() error {
			s, err := c.loadSnapshot(gctx, name)
			if err != nil {
				return err
			}
			snaps[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range snaps {
		if s != nil {
			ds.Snapshots = append(ds.Snapshots, *s)
		}
	}
	c.log.Info().
		Str("load_id", ds.LoadID).
		Int("files", len(names)).
		Int("snapshots", len(ds.Snapshots)).
		Bool("baseline", ds.Baseline != nil).
		Bool("ltm_high", ds.LTMHigh != nil).
		Bool("fundamentals", ds.Fundamentals != nil).
		Msg("dataset collected")
	return ds, nil
}

// loadSnapshot fetches and decodes one daily file. Files whose shape does not
// match (a non-string date, for example) and files without a date are
// skipped and return nil.
func (c *Collector) loadSnapshot(ctx context.Context, name string) (*model.Snapshot, error) {
	data, err := withRetry(ctx, c, name, func(ctx context.Context) ([]byte, error) {
		return c.Fetcher.Fetch(ctx, name)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, asTransport(err))
	}

	var s model.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			c.log.Warn().Str("file", name).Err(err).Msg("skipping malformed snapshot")
			return nil, nil
		}
		return nil, fmt.Errorf("decode %s: %w: %v", name, ErrTransport, err)
	}
	if s.Date == "" {
		c.log.Warn().Str("file", name).Msg("skipping snapshot without date")
		return nil, nil
	}
	return &s, nil
}

func loadOptional[T any](ctx context.Context, c *Collector, name string) *T {
	data, err := withRetry(ctx, c, name, func(ctx context.Context) ([]byte, error) {
		return c.Fetcher.Fetch(ctx, name)
	})
	if err != nil {
		c.log.Warn().Str("file", name).Err(err).Msg("optional file unavailable, continuing without it")
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.Warn().Str("file", name).Err(err).Msg("optional file unreadable, continuing without it")
		return nil
	}
	return &v
}

// withRetry runs fn with a per-attempt timeout and exponential backoff.
// Not-found answers are final and never retried.
func withRetry[T any](ctx context.Context, c *Collector, label string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for i := 0; i <= c.Opts.Retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.Opts.Timeout)
		v, err := fn(attemptCtx)
		cancel()
		if err == nil {
			return v, nil
		}
		if errors.Is(err, ErrNotFound) {
			return zero, err
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err
		if i == c.Opts.Retries {
			break
		}

		backoff := c.Opts.Backoff * time.Duration(1<<uint(i))
		c.log.Warn().Err(err).Str("file", label).
			Int("attempt", i+1).Int("max_attempts", c.Opts.Retries+1).
			Dur("backoff", backoff).Msg("fetch failed, retrying")
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
	}
	if errors.Is(lastErr, context.DeadlineExceeded) {
		return zero, fmt.Errorf("%s: %w: timed out after %d attempts", label, ErrTransport, c.Opts.Retries+1)
	}
	return zero, fmt.Errorf("%s: all %d attempts failed: %w", label, c.Opts.Retries+1, lastErr)
}

// asTransport makes sure a required-file failure matches ErrTransport.
func asTransport(err error) error {
	if errors.Is(err, ErrTransport) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
