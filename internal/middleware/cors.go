package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS разрешает обращения к API с указанных источников (браузерный фронтенд)
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	})
	return c.Handler
}
