package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/meteo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/owm"
)

var validate = validator.New()

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeUpstreamError maps an owm error to a status and error code.
func writeUpstreamError(w http.ResponseWriter, d deps.Deps, city string, err error) {
	switch {
	case errors.Is(err, owm.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "city not found")
	case errors.Is(err, owm.ErrMissingAPIKey):
		writeError(w, http.StatusBadGateway, "missing_api_key", "weather provider API key is not configured")
	case errors.Is(err, owm.ErrUnauthorized):
		d.Logger.Error("weather provider rejected the API key", logger.Error(err))
		writeError(w, http.StatusBadGateway, "api_key", "weather provider rejected the API key")
	case errors.Is(err, owm.ErrInvalidFormat):
		d.Logger.Warn("weather provider sent an unexpected payload",
			logger.String("city", city), logger.Error(err))
		writeError(w, http.StatusBadGateway, "invalid_format", err.Error())
	default:
		d.Logger.Warn("weather provider call failed",
			logger.String("city", city), logger.Error(err))
		writeError(w, http.StatusBadGateway, "upstream", "weather provider unavailable")
	}
}
