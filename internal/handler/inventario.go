package handler

import (
	"net/http"

	"kioscopos/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.ProductoService }

func NewInventarioHandler(svc service.ProductoService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Metricas godoc
// @Summary Métricas de inventario
// @Description Total de productos, stock bajo (0 < stock <= mínimo), agotados y valor a costo.
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MetricasInventarioResponse
// @Router /v1/inventario/metricas [get]
func (h *InventarioHandler) Metricas(c *gin.Context) {
	resp, err := h.svc.Metricas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
