package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/forecast"
	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/owm"
)

// WeatherClient is the upstream the weather handlers call. *owm.Client
// satisfies it.
type WeatherClient interface {
	Current(ctx context.Context, city, lang string) (*owm.Current, error)
	Forecast(ctx context.Context, city, lang string) ([]forecast.Sample, *owm.City, error)
	LocalName(ctx context.Context, lat, lon float64, lang string) (string, bool, error)
}

// Pinger reports whether a backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SeedStatus exposes when the seed file was last imported.
type SeedStatus interface {
	LastReload() (time.Time, int)
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time // for testing, defaults to time.Now
	Weather        WeatherClient    // OpenWeatherMap client
	APIKeySet      bool             // false => weather routes answer 502 missing_api_key
	Bookmarks      *bookmark.Store  // saved cities
	Storage        Pinger           // key-value backend behind Bookmarks
	StorageDriver  string           // "redis" | "sqlite" | "memory"
	Seed           SeedStatus       // nil if no seed file is configured
	ReloadTrigger  chan struct{}    // Channel to trigger a manual seed import (nil if no seed file)
	AllowedOrigins []string         // CORS origins allowed to call the API
	AllowedHosts   []string         // Host headers allowed on admin endpoints
	AllowedCIDRS   []string         // IPs allowed to reach readyz/infra/reload
	TrustProxy     bool             // true if running behind a trusted reverse proxy
	RateBurst      int              // weather routes token bucket size per IP
	RatePerMin     int              // weather routes refill per IP per minute
}

// Now returns d.TimeNow() or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
