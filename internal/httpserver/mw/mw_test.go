package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/meteo/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		preflight  bool
		wantStatus int
		wantOrigin string
	}{
		{name: "no origin header", allowed: []string{"*"}, method: "GET", wantStatus: 200},
		{name: "wildcard", allowed: []string{"*"}, method: "GET", origin: "https://widget.example", wantStatus: 200, wantOrigin: "*"},
		{name: "listed origin echoed", allowed: []string{"https://widget.example/"}, method: "GET", origin: "https://Widget.example", wantStatus: 200, wantOrigin: "https://Widget.example"},
		{name: "unlisted origin", allowed: []string{"https://widget.example"}, method: "GET", origin: "https://evil.example", wantStatus: 200},
		{name: "preflight", allowed: []string{"https://widget.example"}, method: "OPTIONS", origin: "https://widget.example", preflight: true, wantStatus: 204, wantOrigin: "https://widget.example"},
		{name: "preflight rejected", allowed: []string{"https://widget.example"}, method: "OPTIONS", origin: "https://evil.example", preflight: true, wantStatus: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/bookmarks", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "DELETE")
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed)(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.preflight && tt.wantStatus == 204 && rec.Header().Get("Access-Control-Allow-Methods") == "" {
				t.Error("preflight response is missing Allow-Methods")
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 1})(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/weather", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if i == 2 && rec.Header().Get("Retry-After") == "" {
			t.Error("429 response is missing Retry-After")
		}
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	// another client has its own bucket
	req := httptest.NewRequest("GET", "/api/weather", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Errorf("second client status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "1" {
		t.Errorf("X-RateLimit-Remaining = %q, want 1", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestLimiterRefill(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 60})
	now := time.Now()

	if ok, _, _ := l.allow("ip", now); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _, retry := l.allow("ip", now); ok || retry != 1 {
		t.Fatalf("second request ok=%v retry=%d, want rejected with retry 1", ok, retry)
	}
	if ok, _, _ := l.allow("ip", now.Add(time.Second)); !ok {
		t.Error("request after refill should pass")
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		remote     string
		wantStatus int
	}{
		{name: "passthrough", remote: "8.8.8.8:1", wantStatus: 200},
		{name: "allowed", allowed: []string{"10.0.0.0/8"}, remote: "10.2.3.4:1", wantStatus: 200},
		{name: "rejected", allowed: []string{"10.0.0.0/8"}, remote: "8.8.8.8:1", wantStatus: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/readyz", nil)
			req.RemoteAddr = tt.remote
			rec := httptest.NewRecorder()
			AllowOnlyCIDRS(tt.allowed, false, logger.Nop())(okHandler).ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"meteo.example.com", "meteo.example.com", true},
		{"meteo.example.com:8080", "meteo.example.com", true},
		{"meteo.example.com:8080", "meteo.example.com:9090", false},
		{"METEO.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"other.com", "meteo.example.com", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestLogRecordsStatus(t *testing.T) {
	h := Log(logger.Nop(), false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || rec.Body.String() != "hello" {
		t.Errorf("response = %d %q", rec.Code, rec.Body.String())
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"meteo.lan"}, logger.Nop())(okHandler)

	for host, want := range map[string]int{"meteo.lan": 200, "meteo.lan:8080": 200, "evil.lan": 403} {
		req := httptest.NewRequest("POST", "/reload", nil)
		req.Host = host
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("host %s: status = %d, want %d", host, rec.Code, want)
		}
	}
}
