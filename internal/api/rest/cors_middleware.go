package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CORSConfig configures CORS middleware
type CORSConfig struct {
	// AllowedOrigins is the origin allowlist. Empty allows every origin,
	// which is the demo default.
	AllowedOrigins []string

	// AllowedMethods is a list of methods the client is allowed to use.
	AllowedMethods []string

	// AllowedHeaders is list of non-simple headers the client is allowed to use.
	AllowedHeaders []string

	// MaxAge indicates how long the results of a preflight request can be cached.
	MaxAge time.Duration
}

// DefaultCORSConfig returns the demo configuration: GET and POST only
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 12 * time.Hour,
	}
}

// CORSMiddleware provides CORS support
type CORSMiddleware struct {
	config         CORSConfig
	allowedOrigins map[string]bool
	allowAll       bool
	allowedMethods string
	allowedHeaders string
	maxAge         string
}

// NewCORSMiddleware creates a new CORS middleware
func NewCORSMiddleware(config CORSConfig) *CORSMiddleware {
	allowedOrigins := make(map[string]bool)
	for _, origin := range config.AllowedOrigins {
		allowedOrigins[strings.ToLower(origin)] = true
	}

	return &CORSMiddleware{
		config:         config,
		allowedOrigins: allowedOrigins,
		allowAll:       len(config.AllowedOrigins) == 0 || allowedOrigins["*"],
		allowedMethods: strings.Join(config.AllowedMethods, ", "),
		allowedHeaders: strings.Join(config.AllowedHeaders, ", "),
		maxAge:         strconv.Itoa(int(config.MaxAge.Seconds())),
	}
}

// Middleware returns the CORS middleware function. Requests from origins
// outside the allowlist are rejected before reaching business logic.
func (c *CORSMiddleware) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && !c.isOriginAllowed(origin) {
				http.Error(w, "origin not allowed", http.StatusForbidden)
				return
			}

			if origin != "" {
				headers := w.Header()
				headers.Set("Access-Control-Allow-Origin", origin)
				headers.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				headers := w.Header()
				headers.Set("Access-Control-Allow-Methods", c.allowedMethods)
				headers.Set("Access-Control-Allow-Headers", c.allowedHeaders)
				headers.Set("Access-Control-Max-Age", c.maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed checks if an origin is allowed
func (c *CORSMiddleware) isOriginAllowed(origin string) bool {
	if c.allowAll {
		return true
	}

	normalized := strings.ToLower(origin)
	if c.allowedOrigins[normalized] {
		return true
	}

	for allowed := range c.allowedOrigins {
		if strings.Contains(allowed, "*") && matchWildcard(normalized, allowed) {
			return true
		}
	}

	return false
}

// matchWildcard matches origin against a pattern like "https://*.example.com"
func matchWildcard(origin, pattern string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) != 2 {
		return false
	}

	return strings.HasPrefix(origin, parts[0]) && strings.HasSuffix(origin, parts[1])
}
