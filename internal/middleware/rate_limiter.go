package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"kioscopos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
)

// RateLimiter limits each client IP to limit requests per window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return adaptar(httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(demasiadas("Demasiadas solicitudes. Intente nuevamente en un momento.")),
	))
}

// LoginRateLimiter caps login attempts at 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return adaptar(httprate.Limit(20, time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			ip, err := httprate.KeyByIP(r)
			return "login:" + ip, err
		}),
		httprate.WithLimitHandler(demasiadas("Demasiados intentos de login. Intente en 1 minuto.")),
	))
}

func demasiadas(msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(apierror.New(msg))
	}
}

// adaptar runs a net/http middleware inside the gin chain; the chain stops
// when the wrapped middleware does not call its next handler.
func adaptar(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		siguio := false
		mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			siguio = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !siguio {
			c.Abort()
		}
	}
}
