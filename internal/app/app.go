package app

import (
	"context"
	"fmt"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/platform/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/adapters/memory"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/adapters/ratesapi"
	"fxconvert/internal/api"
	"fxconvert/internal/catalog"
	"fxconvert/internal/config"
	"fxconvert/internal/rate"
	"fxconvert/internal/rate/handler"
	"fxconvert/internal/reachability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const probeTimeout = 5 * time.Second

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, preferences)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Preferences
	prefsRepo, closePrefs, err := newPreferenceRepository(startupCtx, appCfg)
	if err != nil {
		return err
	}
	defer closePrefs()

	// Currency catalog
	searchCache, err := cache.NewSearchCache(appCfg.Catalog.SearchCacheSize)
	if err != nil {
		logrus.WithError(err).Error("Failed to create search cache")
		return err
	}
	defer searchCache.Close()
	currencies := catalog.LoadAll(appCfg.Catalog.Path)
	currencyCatalog := catalog.New(currencies, searchCache)
	logrus.WithField("currencies", len(currencies)).Info("✅ Currency catalog loaded")

	// Base HTTP client (configurable timeout)
	httpTimeout := appCfg.HTTPClient.Timeout()
	if httpTimeout <= 0 {
		httpTimeout = httpclient.DefaultTimeout
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	rateClient := httpclient.NewExchangeRateClient(baseHTTPClient, appCfg.RatesAPI.BaseURL, httpTimeout)
	prober := ratesapi.NewClient(&http.Client{Timeout: probeTimeout}, appCfg.RatesAPI.BaseURL)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rateMetrics := metrics.NewRateMetrics(registry)

	scheduler := rate.NewScheduler()
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Rate store
	store := rate.NewStore(ctx, rateClient, prefsRepo, currencyCatalog, scheduler, rate.StoreConfig{
		Freshness:  time.Duration(appCfg.Store.FreshnessSeconds) * time.Second,
		RetryDelay: time.Duration(appCfg.Store.RetryDelayMillis) * time.Millisecond,
		Metrics:    rateMetrics,
	})
	defer store.Close()
	if err = store.RemoveBaseCurrencyFromSelection(); err != nil {
		return err
	}
	if err = store.LoadRates(); err != nil {
		return err
	}
	logrus.WithField("base", store.Snapshot().Base).Info("✅ Rate store ready")

	// Reachability probe
	monitor := reachability.NewMonitor(prober, store)
	probeInterval := time.Duration(appCfg.Reachability.ProbeIntervalSeconds) * time.Second
	if probeErr := scheduler.Every("reachability-probe", probeInterval, monitor.Check); probeErr != nil {
		logrus.WithError(probeErr).Error("Failed to schedule reachability probe")
		return probeErr
	}

	// Handlers and router
	rateHandler := handler.NewRateHandler(rate.NewValidator(currencyCatalog.Codes()), store)
	router := api.NewRouter(rateHandler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// newPreferenceRepository picks the configured preferences backend. The returned
// func releases whatever the backend holds.
func newPreferenceRepository(ctx context.Context, appCfg *config.AppConfig) (adapters.PreferenceRepository, func(), error) {
	if appCfg.Preferences.Driver != config.PreferencesPostgres {
		logrus.Info("✅ In-memory preferences selected")
		return memory.NewPreferenceRepository(), func() {}, nil
	}

	if err := db.Migrate(ctx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Error migrating db")
		return nil, nil, err
	}
	logrus.Info("✅ Postgres migrations applied")

	pool, err := db.CreatePoolAndPing(ctx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return nil, nil, fmt.Errorf("failed to connect to preferences db: %w", err)
	}
	logrus.Info("✅ Postgres connection successful")
	return postgres.NewPreferenceRepository(pool), pool.Close, nil
}
