package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make cross-origin requests.
	// Entries may use a single wildcard such as "https://*.example.com".
	// An empty list denies every cross-origin request.
	AllowedOrigins []string

	// MaxAge is the Access-Control-Max-Age value in seconds.
	MaxAge int

	// Debug makes rs/cors log its decisions.
	Debug bool
}

// DefaultCORSConfig returns production-safe CORS defaults.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		MaxAge: 86400,
	}
}

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// Credentials travel in the Authorization header, so it must be allowed,
// and Location must be exposed for clients following 201 responses.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept", RequestIDHeader},
		ExposedHeaders: []string{"Location", RequestIDHeader},
		MaxAge:         cfg.MaxAge,
		Debug:          cfg.Debug,
	})

	if len(cfg.AllowedOrigins) == 0 {
		c = cors.New(cors.Options{
			AllowOriginFunc: func(string) bool { return false },
		})
	}

	return c.Handler
}
