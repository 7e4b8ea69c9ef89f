package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemVentaRequest is one sale line. ProductoID is optional: without it the
// product is looked up by exact name, and an unmatched line moves no stock.
// Subtotal, when sent, must equal cantidad * precio_unitario.
type ItemVentaRequest struct {
	ProductoID     *string          `json:"producto_id"     validate:"omitempty,uuid"`
	Nombre         string           `json:"nombre"          validate:"required,max=120"`
	Cantidad       int              `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal  `json:"precio_unitario"`
	Subtotal       *decimal.Decimal `json:"subtotal"`
}

// RegistrarVentaRequest: Total, when sent, must equal the sum of line subtotals.
type RegistrarVentaRequest struct {
	ClienteID   *string            `json:"cliente_id"   validate:"omitempty,uuid"`
	TipoCliente string             `json:"tipo_cliente" validate:"max=50"`
	MetodoPago  string             `json:"metodo_pago"  validate:"required,max=50"`
	Total       *decimal.Decimal   `json:"total"`
	Items       []ItemVentaRequest `json:"items"        validate:"required,min=1,dive"`
}

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha string `form:"fecha" validate:"omitempty,datetime=2006-01-02"` // empty = today
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ID             string          `json:"id"`
	ProductoID     *string         `json:"producto_id"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	ClienteID     *string             `json:"cliente_id"`
	ClienteNombre string              `json:"cliente_nombre"`
	TipoCliente   string              `json:"tipo_cliente"`
	Total         decimal.Decimal     `json:"total"`
	MetodoPago    string              `json:"metodo_pago"`
	EstadoPago    string              `json:"estado_pago"`
	Fecha         string              `json:"fecha"`
	CreatedAt     string              `json:"created_at"`
	Items         []ItemVentaResponse `json:"items"`
}
