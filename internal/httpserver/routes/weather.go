package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/mw"
)

func init() { Register(registerWeather) }

// Upstream calls are rate limited per client IP; validation is free.
func registerWeather(r chi.Router, d deps.Deps) {
	r.Get("/api/validate", handlers.Validate(d))

	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	}))
	limited.Get("/api/weather", handlers.Weather(d))
	limited.Get("/api/forecast/hourly", handlers.Hourly(d))
}
