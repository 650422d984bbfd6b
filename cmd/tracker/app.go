package main

import (
	"flag"
	"fmt"
	"os"

	"SaaSTracker/internal/collector"
	"SaaSTracker/internal/config"
	"SaaSTracker/internal/logger"
	"SaaSTracker/internal/recorder"
	"SaaSTracker/internal/sectors"
	"SaaSTracker/internal/tracker"
	"SaaSTracker/internal/viewstate"

	"github.com/rs/zerolog"
)

var configPath = flag.String("config", defaultConfigPath(), "Path to the YAML config file")

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// app holds what every subcommand needs.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func loadApp() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)
	return &app{cfg: cfg, log: log}, nil
}

// fetcher reads from the remote data API when one is configured and from the
// local data directory otherwise.
func (a *app) fetcher() collector.Fetcher {
	if a.cfg.Data.SourceURL != "" {
		return collector.NewHTTPFetcher(a.cfg.Data.SourceURL, a.cfg.Data.APIKey, a.cfg.Fetch.RequestsPerSecond)
	}
	return collector.NewDirFetcher(a.cfg.Data.Dir)
}

func (a *app) collector() *collector.Collector {
	f := a.fetcher()
	a.log.Info().Str("source", f.Name()).Msg("data source selected")
	return collector.NewCollector(f, collector.Options{
		Timeout:     a.cfg.Fetch.Timeout,
		Retries:     a.cfg.Fetch.Retries,
		Concurrency: a.cfg.Fetch.Concurrency,
	}, a.log)
}

func (a *app) recorder() recorder.Recorder {
	if a.cfg.Export.Path == "" {
		return recorder.NewNoopRecorder()
	}
	r, err := recorder.NewFileRecorder(a.cfg.Export.Path, a.log)
	if err != nil {
		a.log.Warn().Err(err).Msg("init file recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return r
}

// service wires the dashboard service. statePath "" keeps view state in memory.
func (a *app) service(statePath string, sink tracker.Sink) (*tracker.Service, error) {
	views, err := viewstate.NewStore(statePath, a.log)
	if err != nil {
		return nil, fmt.Errorf("init view state: %w", err)
	}
	opts := tracker.Options{Tracker: a.cfg.TrackerOptions()}
	return tracker.NewService(a.collector(), sectors.Default(), views, sink, opts, a.log), nil
}
