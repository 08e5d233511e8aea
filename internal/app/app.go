package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/config"
	"github.com/MrSnakeDoc/meteo/internal/httpserver"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/owm"
	"github.com/MrSnakeDoc/meteo/internal/scheduler"
	"github.com/MrSnakeDoc/meteo/internal/utils"
	"github.com/MrSnakeDoc/meteo/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	storage  *Storage
	reloader *scheduler.SeedReloader
}

// New wires the configured backend, the weather client and the HTTP server.
// The storage backend is connected here so a bad configuration fails fast.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	storage, err := OpenStorage(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}
	loggerClient.Info("storage initialized", logger.String("driver", storage.Driver))

	if cfg.OWMAPIKey == "" {
		loggerClient.Warn("METEO_OWM_API_KEY is not set, weather routes will answer 502")
	}
	weather := NewWeatherClient(cfg, storage.Names, loggerClient)

	bookmarks := bookmark.NewStore(storage.KV, loggerClient.Named("bookmarks"))

	info := version.Get()
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        info.Version,
		Commit:         info.Commit,
		BuildDate:      info.BuildDate,
		GoVersion:      info.GoVersion,
		TimeNow:        time.Now,
		Weather:        weather,
		APIKeySet:      cfg.OWMAPIKey != "",
		Bookmarks:      bookmarks,
		Storage:        storage.Pinger,
		StorageDriver:  storage.Driver,
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		RateBurst:      cfg.RateBurst,
		RatePerMin:     cfg.RatePerMin,
	}

	var reloader *scheduler.SeedReloader
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		d.ReloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewSeedReloader(cfg.SeedFile, bookmarks, loggerClient, cfg.ReloadInterval, d.ReloadTrigger)
		d.Seed = reloader
	} else {
		loggerClient.Info("seed file not configured, default bookmarks disabled")
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		storage:  storage,
		reloader: reloader,
	}, nil
}

// NewWeatherClient builds the OpenWeatherMap client from cfg.
func NewWeatherClient(cfg *config.Config, names owm.NameCache, log logger.Logger) *owm.Client {
	return owm.New(owm.Options{
		APIKey:     cfg.OWMAPIKey,
		BaseURL:    cfg.OWMBaseURL,
		GeoURL:     cfg.OWMGeoURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		NameCache:  names,
		Logger:     log.Named("owm"),
	})
}

// Run serves until SIGINT/SIGTERM or a server error, then shuts down.
func (a *App) Run() error {
	info := version.Get()
	a.logger.Infof("🚀 Starting Meteo v%s on %s", info.Version, a.cfg.ListenPort)
	a.logger.Infof("Meteo %s (commit=%s, built=%s, go=%s)",
		info.Version, info.Commit, info.BuildDate, info.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer utils.MustClose(a.storage, a.logger, "storage")

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		if a.reloader != nil {
			a.reloader.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("✅ Meteo stopped cleanly")
	return nil
}
