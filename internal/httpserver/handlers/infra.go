package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Driver      string `json:"driver,omitempty"`
	CitiesSaved *int   `json:"cities_saved,omitempty"`
	CitiesSeed  *int   `json:"cities_seeded,omitempty"`
	Keys        *int   `json:"keys,omitempty"`
	LastWrite   string `json:"last_write,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

// memoryStats is implemented by the in-memory backend only.
type memoryStats interface {
	Count() int
	GetLastWrite() time.Time
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"storage":        checkStorage(r.Context(), d),
			"openweathermap": checkProvider(d),
		}
		if d.Seed != nil {
			components["seed"] = seedStatus(d)
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode: without a provider key nothing works; without storage only
// bookmarks are lost.
func determineMode(components map[string]componentStatus) string {
	if p, ok := components["openweathermap"]; ok && !p.OK {
		return "critical"
	}
	if s, ok := components["storage"]; ok && !s.OK {
		return "degraded"
	}
	return "optimal"
}

func checkProvider(d deps.Deps) componentStatus {
	if !d.APIKeySet {
		return componentStatus{OK: false, Impact: "weather-disabled", Error: "api key not configured"}
	}
	return componentStatus{OK: true}
}

func checkStorage(parent context.Context, d deps.Deps) componentStatus {
	status := componentStatus{Driver: d.StorageDriver}
	if d.Storage == nil {
		status.Impact = "bookmarks-disabled"
		status.Error = "backend not initialized"
		return status
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Storage.Ping(ctx); err != nil {
		status.Impact = "bookmarks-disabled"
		status.Error = "timeout"
		return status
	}

	status.OK = true
	if d.Bookmarks != nil {
		n := len(d.Bookmarks.List(ctx))
		status.CitiesSaved = &n
	}
	if m, ok := d.Storage.(memoryStats); ok {
		keys := m.Count()
		status.Keys = &keys
		if lw := m.GetLastWrite(); !lw.IsZero() {
			status.LastWrite = lw.Format("2006-01-02 15:04:05")
		}
	}
	return status
}

func seedStatus(d deps.Deps) componentStatus {
	at, count := d.Seed.LastReload()
	status := componentStatus{OK: !at.IsZero(), CitiesSeed: &count, LastReload: "never"}
	if !at.IsZero() {
		status.LastReload = at.Format("2006-01-02 15:04:05")
	}
	return status
}
