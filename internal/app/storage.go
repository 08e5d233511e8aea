package app

import (
	"context"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/config"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/meteo/internal/index"
	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/owm"
	"github.com/MrSnakeDoc/meteo/internal/redis"
	redisstore "github.com/MrSnakeDoc/meteo/internal/store/redis"
	"github.com/MrSnakeDoc/meteo/internal/store/sqlite"
)

// Storage is the backend selected by METEO_STORAGE_DRIVER.
type Storage struct {
	Driver string
	KV     bookmark.KV
	Pinger deps.Pinger
	Names  owm.NameCache // nil when the backend keeps no name cache
	closer io.Closer
}

// Close releases the backend. Safe on the memory driver.
func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// OpenStorage connects the configured backend. Redis is retried until
// RedisConnectTimeout elapses.
func OpenStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		store := redisstore.NewStore(client, cfg.NameCacheTTL)
		return &Storage{Driver: cfg.StorageDriver, KV: store, Pinger: store, Names: store, closer: store}, nil

	case config.DriverSQLite:
		log.Infof("Opening SQLite database at %s", cfg.SQLitePath)
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return &Storage{Driver: cfg.StorageDriver, KV: store, Pinger: store, Names: index.NewMemoryNames(), closer: store}, nil

	case config.DriverMemory:
		log.Warn("memory storage selected, bookmarks are lost on restart")
		kv := index.NewMemoryIndex()
		return &Storage{Driver: cfg.StorageDriver, KV: kv, Pinger: kv, Names: index.NewMemoryNames()}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
