package handler

import (
	"net/http"

	"kioscopos/internal/dto"
	"kioscopos/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre la caja del día
// @Description Falla con 409 si el último ciclo de la fecha sigue abierto.
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.AperturaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la caja del día
// @Description Calcula los ingresos (ventas pagadas + abonos) y guarda el informe de cierre.
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Datos de cierre"
// @Success 201 {object} dto.CierreResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Estado godoc
// @Summary Estado de la caja para una fecha
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "AAAA-MM-DD (hoy por defecto)"
// @Success 200 {object} dto.EstadoCajaResponse
// @Router /v1/caja/estado [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	var q dto.FechaQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Estado(c.Request.Context(), q.Fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ingresos godoc
// @Summary Ingresos monetarios del día
// @Description Ventas pagadas más abonos; las ventas a cuenta corriente no cuentan.
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "AAAA-MM-DD (hoy por defecto)"
// @Success 200 {object} dto.IngresosResponse
// @Router /v1/caja/ingresos [get]
func (h *CajaHandler) Ingresos(c *gin.Context) {
	var q dto.FechaQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.IngresosDelDia(c.Request.Context(), q.Fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary Historial de aperturas y cierres
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {object} dto.HistorialCajaResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/caja/historial [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	var q dto.RangoQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
