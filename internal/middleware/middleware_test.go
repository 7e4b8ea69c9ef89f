package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kioscopos/internal/infra"
	"kioscopos/internal/middleware"
	"kioscopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func servir(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func firmar(t *testing.T, secret string, claims service.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWTAuth(t *testing.T) {
	r := gin.New()
	r.GET("/p", middleware.JWTAuth("s3cret"), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetClaims(c).Username)
	})

	vigente := firmar(t, "s3cret", service.Claims{
		Username:         "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	vencido := firmar(t, "s3cret", service.Claims{
		Username:         "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	otraClave := firmar(t, "otra", service.Claims{Username: "admin"})
	sinUsuario := firmar(t, "s3cret", service.Claims{})

	casos := []struct {
		nombre string
		header string
		status int
	}{
		{"sin header", "", http.StatusUnauthorized},
		{"esquema incorrecto", "Basic abc", http.StatusUnauthorized},
		{"vencido", "Bearer " + vencido, http.StatusUnauthorized},
		{"firma ajena", "Bearer " + otraClave, http.StatusUnauthorized},
		{"sin usuario", "Bearer " + sinUsuario, http.StatusUnauthorized},
		{"valido", "Bearer " + vigente, http.StatusOK},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := servir(r, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"detail"`)
			}
		})
	}
}

func TestGetClaims_FueraDeRutaProtegida(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, middleware.GetClaims(c))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:5173"}))
	r.GET("/x", ok)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := servir(r, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = servir(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = servir(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_Comodin(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"*"}))
	r.GET("/x", ok)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://cualquiera.example")
	assert.Equal(t, "*", servir(r, req).Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.RequestIDKey)) })

	w := servir(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	generado := w.Header().Get(middleware.RequestIDHeader)
	assert.Len(t, generado, 36)
	assert.Equal(t, generado, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "caja-1")
	w = servir(r, req)
	assert.Equal(t, "caja-1", w.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimiter(2, time.Minute))
	r.GET("/x", ok)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, servir(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	}
	w := servir(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Demasiadas solicitudes")

	// Another client IP has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	assert.Equal(t, http.StatusOK, servir(r, req).Code)
}

func TestLoginRateLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/login", middleware.LoginRateLimiter(), ok)

	var ultimo int
	for i := 0; i < 21; i++ {
		ultimo = servir(r, httptest.NewRequest(http.MethodPost, "/login", nil)).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, ultimo)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeaders(false))
	r.GET("/x", ok)

	w := servir(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSecurityHeaders_ProduccionRedirigeAHTTPS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeaders(true))
	r.GET("/x", ok)

	w := servir(r, httptest.NewRequest(http.MethodGet, "http://kiosco.local/x", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://kiosco.local/x", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "http://kiosco.local/x", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, http.StatusOK, servir(r, req).Code)
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Metrics())
	r.GET("/medido/:id", ok)

	contador := infra.HTTPRequests.WithLabelValues(http.MethodGet, "/medido/:id", "200")
	antes := promtest.ToFloat64(contador)
	servir(r, httptest.NewRequest(http.MethodGet, "/medido/1", nil))
	servir(r, httptest.NewRequest(http.MethodGet, "/medido/2", nil))
	assert.Equal(t, antes+2, promtest.ToFloat64(contador))

	sinRuta := infra.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
	antes = promtest.ToFloat64(sinRuta)
	servir(r, httptest.NewRequest(http.MethodGet, "/nada", nil))
	assert.Equal(t, antes+1, promtest.ToFloat64(sinRuta))
}

func TestErrorHandler_OcultaCausa(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/x", func(c *gin.Context) { _ = c.Error(errors.New("pq: connection refused")) })

	w := servir(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.Contains(t, w.Body.String(), "Error interno del servidor")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/x", func(*gin.Context) { panic("boom") })

	w := servir(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
