package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alexanderramin/reqtrack/internal/api"
	"github.com/alexanderramin/reqtrack/internal/cli"
	"github.com/alexanderramin/reqtrack/internal/config"
	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/service"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.Dialect(), cfg.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewUnitOfWork(database, cfg.Dialect())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := service.NewMetricsObserver(registry)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	var observer service.UseCaseObserver = metrics
	if cfg.LogUseCases {
		observer = service.NewMultiObserver(service.NewLogUseCaseObserver(logger), metrics)
	}
	opt := service.WithObserver(observer)

	app := &cli.App{
		Clients:      service.NewClientService(uow, opt),
		Categories:   service.NewCategoryService(uow, opt),
		Members:      service.NewTeamMemberService(uow, opt),
		Requirements: service.NewRequirementService(uow, opt),
		Summary:      service.NewSummaryService(uow, opt),
		Import:       service.NewImportService(uow, opt),
		Addr:         cfg.HTTPAddr,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Serve = func(ctx context.Context, addr string) error {
		router := api.NewRouter(api.RouterDeps{
			DBPinger:     database,
			Version:      version,
			Clients:      app.Clients,
			Categories:   app.Categories,
			TeamMembers:  app.Members,
			Requirements: app.Requirements,
			Summary:      app.Summary,
			Gatherer:     registry,
		})
		return serve(ctx, logger, addr, router)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, logger *slog.Logger, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
