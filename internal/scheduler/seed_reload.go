package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/sources/seed"
)

// Saver is the part of the bookmark store the reloader writes through.
type Saver interface {
	Save(ctx context.Context, e bookmark.Entry)
}

// SeedReloader imports default bookmarks from the seed file. Seeded cities
// are only ever added: an existing bookmark is left as is, and one the user
// removed comes back on the next reload.
type SeedReloader struct {
	loader        *seed.Loader
	store         Saver
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}

	mu         sync.Mutex
	lastReload time.Time
	lastCount  int
}

// NewSeedReloader creates a new seed reloader. interval <= 0 disables the
// periodic reload; the file is then read on start and on manual triggers.
func NewSeedReloader(
	seedFile string,
	store Saver,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seed.NewLoader(seedFile),
		store:         store,
		logger:        log.Named("seed"),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports the file once, then keeps reloading in the background until
// ctx is done or Stop is called.
func (sr *SeedReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if sr.interval > 0 {
		ticker = time.NewTicker(sr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file", logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file", logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader. It is safe to call more than once.
func (sr *SeedReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

// Reload reads the seed file and saves every city through the store.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	sr.logger.Info("importing seed bookmarks", logger.String("file", sr.loader.Path()))

	file, err := sr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	entries, err := seed.MapCities(file)
	if err != nil {
		return fmt.Errorf("failed to map seed cities: %w", err)
	}

	for _, e := range entries {
		sr.store.Save(ctx, e)
	}

	sr.mu.Lock()
	sr.lastReload = time.Now()
	sr.lastCount = len(entries)
	sr.mu.Unlock()

	sr.logger.Info("seed bookmarks imported", logger.Int("count", len(entries)))
	return nil
}

// LastReload returns when the file was last imported and how many cities it held.
func (sr *SeedReloader) LastReload() (time.Time, int) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return sr.lastReload, sr.lastCount
}
