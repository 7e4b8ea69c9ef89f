package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kioscopos/internal/config"
	"kioscopos/internal/router"
	"kioscopos/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() { gin.SetMode(gin.TestMode) }

func nuevaConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave1234"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		Env:                "test",
		CORSOrigins:        "http://localhost:5173, http://127.0.0.1:5173",
		JWTSecret:          "router-secret",
		JWTExpirationHours: 1,
		AdminUsername:      "admin",
		AdminPasswordHash:  string(hash),
		ShopName:           "Kiosco Router",
		PDFStoragePath:     t.TempDir(),
	}
}

func pedir(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w := pedir(r, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "admin", "password": "clave1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestRouter_RutasProtegidas(t *testing.T) {
	r := router.New(nuevaConfig(t), router.Deps{DB: testutil.NuevaDB(t)})

	for _, path := range []string{"/v1/productos", "/v1/caja/estado", "/v1/reportes/dashboard", "/v1/clientes"} {
		assert.Equal(t, http.StatusUnauthorized, pedir(r, http.MethodGet, path, "", nil).Code, path)
	}

	token := login(t, r)
	for _, path := range []string{
		"/v1/productos", "/v1/categorias", "/v1/clientes", "/v1/ventas",
		"/v1/inventario/metricas", "/v1/caja/estado", "/v1/caja/ingresos", "/v1/caja/historial",
		"/v1/reportes/resumen", "/v1/reportes/top-productos", "/v1/reportes/por-hora",
		"/v1/reportes/metodos-pago", "/v1/reportes/ventas", "/v1/reportes/productos-vendidos",
		"/v1/reportes/movimientos", "/v1/reportes/dashboard", "/v1/reportes/conteos",
		"/v1/reportes/periodo-anterior",
	} {
		assert.Equal(t, http.StatusOK, pedir(r, http.MethodGet, path, token, nil).Code, path)
	}
}

func TestRouter_LoginInvalido(t *testing.T) {
	r := router.New(nuevaConfig(t), router.Deps{DB: testutil.NuevaDB(t)})

	w := pedir(r, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "admin", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = pedir(r, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_CicloDeCaja(t *testing.T) {
	r := router.New(nuevaConfig(t), router.Deps{DB: testutil.NuevaDB(t)})
	token := login(t, r)

	w := pedir(r, http.MethodPost, "/v1/productos", token, map[string]interface{}{
		"codigo": "1", "nombre": "Cola", "precio_costo": 50, "precio_venta": 100, "stock_actual": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var prod struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prod))

	w = pedir(r, http.MethodPost, "/v1/caja/abrir", token, map[string]interface{}{"monto_inicial": 500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = pedir(r, http.MethodPost, "/v1/ventas", token, map[string]interface{}{
		"metodo_pago": "Efectivo",
		"items":       []map[string]interface{}{{"producto_id": prod.ID, "nombre": "Cola", "cantidad": 3, "precio_unitario": 100}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = pedir(r, http.MethodPost, "/v1/caja/cerrar", token, map[string]interface{}{})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cierre struct {
		TotalIngresos decimal.Decimal `json:"total_ingresos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cierre))
	assert.True(t, decimal.NewFromInt(300).Equal(cierre.TotalIngresos), cierre.TotalIngresos.String())

	w = pedir(r, http.MethodPost, "/v1/caja/cerrar", token, map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = pedir(r, http.MethodGet, "/v1/productos/codigo/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock_actual":7`)
}

func TestRouter_Infraestructura(t *testing.T) {
	r := router.New(nuevaConfig(t), router.Deps{DB: testutil.NuevaDB(t)})

	w := pedir(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = pedir(r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "kiosco_http_requests_total"))

	req := httptest.NewRequest(http.MethodOptions, "/v1/productos", nil)
	req.Header.Set("Origin", "http://127.0.0.1:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://127.0.0.1:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerSoloFueraDeProduccion(t *testing.T) {
	db := testutil.NuevaDB(t)

	cfg := nuevaConfig(t)
	dev := router.New(cfg, router.Deps{DB: db})
	assert.NotEqual(t, http.StatusNotFound, pedir(dev, http.MethodGet, "/swagger/index.html", "", nil).Code)

	cfg = nuevaConfig(t)
	cfg.Env = "production"
	prod := router.New(cfg, router.Deps{DB: db})
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	prod.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
