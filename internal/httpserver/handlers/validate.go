package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/meteo/internal/citycheck"
	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
)

type validateResponse struct {
	Query  string           `json:"query"`
	Valid  bool             `json:"valid"`
	Reason citycheck.Reason `json:"reason,omitempty"`
}

// Validate reports whether ?q= looks like a city name. It never calls the
// weather provider.
func Validate(_ deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		v := citycheck.Validate(q)
		writeJSON(w, http.StatusOK, validateResponse{
			Query:  q,
			Valid:  v.Valid,
			Reason: v.Reason,
		})
	}
}
