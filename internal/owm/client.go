// Package owm talks to the OpenWeatherMap HTTP API.
package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/utils"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultGeoURL  = "https://api.openweathermap.org/geo/1.0"

	// how much of a non-JSON body ends up in the error message
	bodySnippetLen = 100
)

// Options configures a Client.
type Options struct {
	APIKey     string
	BaseURL    string // data API, ex: https://api.openweathermap.org/data/2.5
	GeoURL     string // geocoding API, ex: https://api.openweathermap.org/geo/1.0
	HTTPClient *http.Client
	Backoff    BackoffConfig
	NameCache  NameCache // optional cache for reverse-geocoded names
	Logger     logger.Logger
}

// Client fetches current conditions, forecasts and localized city names.
type Client struct {
	apiKey  string
	baseURL string
	geoURL  string
	http    *http.Client
	backoff BackoffConfig
	breaker *gobreaker.CircuitBreaker
	names   NameCache
	logger  logger.Logger
}

// New creates a client. A missing API key is reported per call, not here.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.GeoURL == "" {
		opts.GeoURL = DefaultGeoURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Backoff.InitialInterval <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		geoURL:  strings.TrimRight(opts.GeoURL, "/"),
		http:    opts.HTTPClient,
		backoff: opts.Backoff,
		breaker: newBreaker("openweathermap"),
		names:   opts.NameCache,
		logger:  opts.Logger,
	}
}

// weatherLang maps widget languages to the data API's codes.
func weatherLang(lang string) string {
	if lang == "cs" {
		return "cz"
	}
	if lang == "" {
		return "en"
	}
	return lang
}

// geoLang maps widget languages to the geocoding API's local_names keys.
func geoLang(lang string) string {
	switch lang {
	case "en":
		return "en"
	case "ua":
		return "uk"
	case "cs", "cz":
		return "cs"
	case "ru":
		return "ru"
	default:
		return "en"
	}
}

// getJSON performs a GET against endpoint with params and decodes the JSON
// body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	params.Set("appid", c.apiKey)
	u := endpoint + "?" + params.Encode()

	resp, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	})
	if err != nil {
		return err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLen))
		return &APIError{
			Status:  resp.StatusCode,
			Code:    "INVALID_FORMAT",
			Message: fmt.Sprintf("expected JSON, got: %s...", body),
			kind:    ErrInvalidFormat,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    "INVALID_FORMAT",
			Message: fmt.Sprintf("failed to decode response: %v", err),
			kind:    ErrInvalidFormat,
		}
	}
	return nil
}

// apiError builds an APIError, preferring the message OpenWeatherMap puts in
// its error body ({"cod":"404","message":"city not found"}).
func apiError(resp *http.Response) *APIError {
	e := &APIError{
		Status: resp.StatusCode,
		Code:   fmt.Sprint(resp.StatusCode),
		kind:   classifyStatus(resp.StatusCode),
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		e.Message = body.Message
	}
	return e
}
