package mw

import (
	"net"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/meteo/internal/logger"
)

// EnforceHost rejects requests whose Host header matches none of
// allowedHosts. Patterns may be exact ("meteo.lan") or wildcard
// ("*.example.com"). An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, pattern := range allowedHosts {
				if matchHost(r.Host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("host not allowed",
				logger.String("host", r.Host),
				logger.String("path", r.URL.Path))
			writeForbidden(w)
		})
	}
}

// matchHost checks if host matches pattern (supports wildcard *.example.com).
// A pattern without a port matches the host on any port.
func matchHost(host, pattern string) bool {
	host = strings.ToLower(host)
	pattern = strings.ToLower(pattern)

	// Exact match
	if host == pattern {
		return true
	}
	if h, _, err := net.SplitHostPort(host); err == nil && !strings.Contains(pattern, ":") {
		host = h
		if host == pattern {
			return true
		}
	}

	// Wildcard match: *.example.com matches sub.example.com
	if strings.HasPrefix(pattern, "*.") {
		suffix := pattern[1:] // Remove * to get .example.com
		return strings.HasSuffix(host, suffix)
	}

	return false
}
