package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser calls from the given origins, with credentials so the
// guest session cookie survives cross-origin requests.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader, SessionHeader},
		ExposedHeaders:   []string{RequestIDHeader, SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
