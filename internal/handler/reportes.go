package handler

import (
	"fmt"
	"net/http"

	"kioscopos/internal/dto"
	"kioscopos/internal/service"

	"github.com/gin-gonic/gin"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// rango binds ?desde=&hasta= and runs fn; every range report shares this shape.
func rango[T any](c *gin.Context, fn func(q dto.RangoQuery) (T, error)) {
	var q dto.RangoQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := fn(q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Resumen de ventas del período
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {object} dto.ResumenResponse
// @Router /v1/reportes/resumen [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	rango(c, func(q dto.RangoQuery) (*dto.ResumenResponse, error) {
		return h.svc.Resumen(c.Request.Context(), q)
	})
}

// PeriodoAnterior godoc
// @Summary Resumen del período anterior de igual duración
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {object} dto.ResumenResponse
// @Router /v1/reportes/periodo-anterior [get]
func (h *ReportesHandler) PeriodoAnterior(c *gin.Context) {
	rango(c, func(q dto.RangoQuery) (*dto.ResumenResponse, error) {
		return h.svc.PeriodoAnterior(c.Request.Context(), q)
	})
}

// TopProductos godoc
// @Summary Productos más vendidos
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Param limit query int false "1..100 (10 por defecto)"
// @Success 200 {array} dto.ProductoVendidoResponse
// @Router /v1/reportes/top-productos [get]
func (h *ReportesHandler) TopProductos(c *gin.Context) {
	var q dto.TopProductosQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.TopProductos(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorHora godoc
// @Summary Ventas por hora del día
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {array} dto.VentaHoraResponse
// @Router /v1/reportes/por-hora [get]
func (h *ReportesHandler) PorHora(c *gin.Context) {
	rango(c, func(q dto.RangoQuery) ([]dto.VentaHoraResponse, error) {
		return h.svc.VentasPorHora(c.Request.Context(), q)
	})
}

// MetodosPago godoc
// @Summary Distribución por método de pago
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {array} dto.MetodoPagoResponse
// @Router /v1/reportes/metodos-pago [get]
func (h *ReportesHandler) MetodosPago(c *gin.Context) {
	rango(c, func(q dto.RangoQuery) ([]dto.MetodoPagoResponse, error) {
		return h.svc.DistribucionMetodosPago(c.Request.Context(), q)
	})
}

// Ventas godoc
// @Summary Detalle de ventas del período (máx. 100)
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {array} dto.VentaReporteResponse
// @Router /v1/reportes/ventas [get]
func (h *ReportesHandler) Ventas(c *gin.Context) {
	rango(c, func(q dto.RangoQuery) ([]dto.VentaReporteResponse, error) {
		return h.svc.ReporteVentas(c.Request.Context(), q)
	})
}

// ProductosVendidos godoc
// @Summary Total de unidades vendidas
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {object} map[string]int64
// @Router /v1/reportes/productos-vendidos [get]
func (h *ReportesHandler) ProductosVendidos(c *gin.Context) {
	rango(c, func(q dto.RangoQuery) (gin.H, error) {
		n, err := h.svc.ProductosVendidos(c.Request.Context(), q)
		return gin.H{"productos_vendidos": n}, err
	})
}

// Movimientos godoc
// @Summary Movimientos del día (ventas y abonos)
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "AAAA-MM-DD (hoy por defecto)"
// @Success 200 {array} dto.MovimientoResponse
// @Router /v1/reportes/movimientos [get]
func (h *ReportesHandler) Movimientos(c *gin.Context) {
	var q dto.FechaQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.MovimientosDetallados(c.Request.Context(), q.Fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Todos los reportes del período con variación porcentual
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/reportes/dashboard [get]
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	rango(c, func(q dto.RangoQuery) (*dto.DashboardResponse, error) {
		return h.svc.Dashboard(c.Request.Context(), q)
	})
}

// Conteos godoc
// @Summary Cantidad de filas por tabla
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Router /v1/reportes/conteos [get]
func (h *ReportesHandler) Conteos(c *gin.Context) {
	resp, err := h.svc.Conteos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exportar godoc
// @Summary Exportar reporte a Excel
// @Tags reportes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param desde query string false "AAAA-MM-DD"
// @Param hasta query string false "AAAA-MM-DD"
// @Success 200 {file} binary
// @Router /v1/reportes/exportar [get]
func (h *ReportesHandler) Exportar(c *gin.Context) {
	var q dto.RangoQuery
	if !bindQuery(c, &q) {
		return
	}
	data, err := h.svc.ExportarExcel(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	nombre := "reporte_completo.xlsx"
	if q.Desde != "" {
		nombre = fmt.Sprintf("reporte_%s_%s.xlsx", q.Desde, q.Hasta)
	}
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, mimeXLSX, data)
}
