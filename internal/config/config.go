package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers for the bookmark blob.
const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// OpenWeatherMap
	OWMAPIKey    string        // empty => every weather call fails with a missing key error
	OWMBaseURL   string        // ex: https://api.openweathermap.org/data/2.5
	OWMGeoURL    string        // ex: https://api.openweathermap.org/geo/1.0
	HTTPTimeout  time.Duration // per-request timeout for upstream calls
	NameCacheTTL time.Duration // TTL of cached localized city names (redis only)

	// Bookmarks
	StorageDriver  string        // "redis" | "sqlite" | "memory"
	SQLitePath     string        // ex: /data/meteo.db
	SeedFile       string        // optional YAML file of default bookmarks
	ReloadInterval time.Duration // interval to re-import SeedFile (0 = only on start and /reload)

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Access
	AllowedOrigins []string // CORS origins allowed to call the API ("*" = any)
	AllowedHosts   []string // optional, Host headers accepted on /reload
	AllowedCIDRS   []string // optional, restrict access to specific IPs or networks
	TrustProxy     bool     // true => trust X-Forwarded-For / X-Real-IP
	RateBurst      int      // token bucket size per client IP on weather routes
	RatePerMin     int      // tokens refilled per minute per client IP
}

// Load reads the configuration from the environment, after merging an
// optional .env file from the working directory.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("METEO_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("METEO_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("METEO_LOG_LEVEL", "info"),
		PrettyLog: mustBool("METEO_PRETTY_LOG", true),

		// OpenWeatherMap
		OWMAPIKey:    getenv("METEO_OWM_API_KEY", ""),
		OWMBaseURL:   getenv("METEO_OWM_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OWMGeoURL:    getenv("METEO_OWM_GEO_URL", "https://api.openweathermap.org/geo/1.0"),
		HTTPTimeout:  mustDuration("METEO_HTTP_TIMEOUT", 10*time.Second),
		NameCacheTTL: mustDuration("METEO_NAME_CACHE_TTL", 7*24*time.Hour),

		// Bookmarks
		StorageDriver:  strings.ToLower(getenv("METEO_STORAGE_DRIVER", DriverRedis)),
		SQLitePath:     getenv("METEO_SQLITE_PATH", "/data/meteo.db"),
		SeedFile:       getenv("METEO_SEED_FILE", ""),
		ReloadInterval: mustDuration("METEO_RELOAD_INTERVAL", 0),

		// Redis settings
		RedisUser:           getenv("METEO_REDIS_USERNAME", ""),
		RedisPassword:       getenv("METEO_REDIS_PASSWORD", ""),
		RedisDT:             mustDuration("METEO_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("METEO_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("METEO_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("METEO_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("METEO_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("METEO_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("METEO_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("METEO_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("METEO_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("METEO_ALLOWED_ORIGINS", "*")),
		AllowedHosts:   splitAndTrim(getenv("METEO_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("METEO_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("METEO_TRUST_PROXY", false),
		RateBurst:      getenvInt("METEO_RATE_BURST", 20),
		RatePerMin:     getenvInt("METEO_RATE_PER_MIN", 60),
	}

	switch cfg.StorageDriver {
	case DriverRedis:
		cfg.RedisAddr = requireEnv("METEO_REDIS_ADDR")
		cfg.RedisDB = requireEnvInt("METEO_REDIS_DB")
	case DriverSQLite, DriverMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: METEO_STORAGE_DRIVER must be one of redis, sqlite, memory (got %q)", cfg.StorageDriver))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.RedisPassword != "" {
		c.RedisPassword = "***REDACTED***"
	}
	if c.OWMAPIKey != "" {
		c.OWMAPIKey = "***REDACTED***"
	}
	return c
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
