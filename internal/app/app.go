package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/api"
	"fxconvert/internal/cli"
	"fxconvert/internal/config"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/rate"
	"fxconvert/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type components struct {
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	service   *rate.Service
	validator *rate.CurrencyValidator
	scheduler *rate.Scheduler
	close     func()
}

// Run parses args, loads config and dispatches to the selected mode.
func Run(args []string) error {
	opts, err := cli.ParseArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	appCfg, err := config.Init(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err = appCfg.Validate(); err != nil {
		return err
	}
	configureLogging(appCfg.Logging.Level, opts.Mode)
	logrus.Debug("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, opts, appCfg, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, opts cli.Options, appCfg *config.AppConfig, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	comps, err := build(appCfg)
	if err != nil {
		return err
	}
	defer comps.close()

	runner := cli.NewRunner(comps.service, comps.validator, stdout, stderr)

	switch opts.Mode {
	case cli.ModeServe:
		return serve(ctx, appCfg, comps)
	case cli.ModeList:
		return runner.ListRates(ctx, opts.Source)
	case cli.ModeInteractive:
		if err = startScheduler(ctx, comps.scheduler); err != nil {
			return err
		}
		return runner.Interactive(ctx, stdin)
	default:
		return runner.Convert(ctx, opts.Source, opts.Target, opts.Amount)
	}
}

func serve(ctx context.Context, appCfg *config.AppConfig, comps *components) error {
	if err := startScheduler(ctx, comps.scheduler); err != nil {
		return err
	}

	rateHandler := handler.NewRateHandler(comps.validator, comps.service)
	router := api.NewRouter(rateHandler, comps.metrics, comps.registry)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func startScheduler(ctx context.Context, scheduler *rate.Scheduler) error {
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")
	return nil
}

// build wires one cache instance per process into the service and background jobs.
func build(appCfg *config.AppConfig) (*components, error) {
	warmPairs, err := parseWarmPairs(appCfg.Cache.WarmPairs)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	// Base HTTP client (configurable timeout)
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	rateClient := httpclient.NewExchangeRateClient(baseHTTPClient, appCfg.ExchangeRateAPI.LatestURL())

	rateCache, closeCache, err := newRateCache(appCfg.Cache)
	if err != nil {
		return nil, err
	}

	svcOpts := []rate.Option{rate.WithMetrics(m)}
	if appCfg.Cache.Coalesce {
		svcOpts = append(svcOpts, rate.WithCoalescing())
	}
	rateService := rate.NewService(rateClient, rateCache, svcOpts...)

	supported := make(map[string]struct{}, len(appCfg.SupportedCurrencies))
	for _, code := range appCfg.SupportedCurrencies {
		supported[code] = struct{}{}
	}

	jobs := []rate.Job{rate.WarmJob(rateService, warmPairs, appCfg.Cache.WarmInterval)}
	if sweeper, ok := rateCache.(adapters.ExpiredSweeper); ok {
		jobs = append(jobs, rate.SweepJob(sweeper, m, appCfg.Cache.SweepInterval))
	}
	scheduler := rate.NewScheduler(jobs...)

	return &components{
		registry:  registry,
		metrics:   m,
		service:   rateService,
		validator: rate.NewValidator(supported),
		scheduler: scheduler,
		close: func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
			closeCache()
		},
	}, nil
}

// newRateCache picks the bounded ristretto cache when max_items is set, the plain TTL map otherwise.
func newRateCache(cfg config.Cache) (adapters.RateCache, func(), error) {
	if cfg.MaxItems > 0 {
		bounded, err := cache.NewBoundedRateCache(cfg.MaxItems, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		logrus.WithField("max_items", cfg.MaxItems).Info("Using bounded rate cache")
		return bounded, bounded.Close, nil
	}
	return cache.NewRateCache(cfg.TTL, nil), func() {}, nil
}

func parseWarmPairs(raw []string) ([]domain.RatePair, error) {
	pairs := make([]domain.RatePair, 0, len(raw))
	for _, r := range raw {
		p, err := rate.ParsePair(r)
		if err != nil {
			return nil, fmt.Errorf("invalid cache.warm_pairs entry: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// configureLogging keeps stdout clean for command output outside of serve mode.
func configureLogging(level string, mode cli.Mode) {
	if mode == cli.ModeServe {
		logrus.SetOutput(os.Stdout)
	} else {
		logrus.SetOutput(os.Stderr)
	}
	if parsedLvl, parseErr := logrus.ParseLevel(level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}
