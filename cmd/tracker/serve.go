package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SaaSTracker/internal/collector"
	"SaaSTracker/internal/scheduler"
	"SaaSTracker/internal/server"

	"github.com/google/subcommands"
)

type serveCmd struct {
	noInitialLoad bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the data API, the dashboard API and the frontend" }
func (*serveCmd) Usage() string {
	return `serve [-no-initial-load]

  Serves /api/data from data.dir, the dashboard API and the static frontend,
  and reloads the dashboard on schedule.refresh_cron.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noInitialLoad, "no-initial-load", false, "Wait for the first scheduled reload instead of loading at startup.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cfg := a.cfg

	rec := a.recorder()
	defer rec.Close()

	svc, err := a.service(cfg.View.StateFile, rec)
	if err != nil {
		a.log.Error().Err(err).Msg("init dashboard service")
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, svc, 2*time.Minute, a.log)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		a.log.Error().Err(err).Msg("register cron tasks")
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	if !c.noInitialLoad {
		go func() {
			if err := sched.RunNow(); err != nil {
				a.log.Error().Err(err).Msg("initial load failed")
			}
		}()
	}

	srv := server.New(server.Config{
		Log:        a.log,
		Port:       cfg.Server.Port,
		StaticDir:  cfg.Server.StaticDir,
		Store:      collector.NewDirFetcher(cfg.Data.Dir),
		Dashboards: svc,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			a.log.Error().Err(err).Msg("HTTP server failed")
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		a.log.Info().Msg("shutdown signal received, stopping...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("HTTP server shutdown")
	}
	a.log.Info().Msg("SaaSTracker stopped")
	return subcommands.ExitSuccess
}
