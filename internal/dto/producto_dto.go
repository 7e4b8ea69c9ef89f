package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearProductoRequest: codigo is optional but unique; categoria is a category
// name, created on the fly when no such category exists.
type CrearProductoRequest struct {
	Codigo      *string         `json:"codigo"       validate:"omitempty,max=50"`
	Nombre      string          `json:"nombre"       validate:"required,max=120"`
	Categoria   *string         `json:"categoria"    validate:"omitempty,max=100"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	StockActual *int            `json:"stock_actual" validate:"omitempty,min=0"`
	StockMinimo *int            `json:"stock_minimo" validate:"omitempty,min=0"`
}

type ActualizarStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      *string         `json:"codigo"`
	Nombre      string          `json:"nombre"`
	CategoriaID *string         `json:"categoria_id"`
	Categoria   *string         `json:"categoria"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	StockActual int             `json:"stock_actual"`
	StockMinimo int             `json:"stock_minimo"`
	StockBajo   bool            `json:"stock_bajo"`
	SinStock    bool            `json:"sin_stock"`
	CreatedAt   string          `json:"created_at"`
}

type MetricasInventarioResponse struct {
	TotalProductos  int64           `json:"total_productos"`
	StockBajo       int64           `json:"stock_bajo"`
	SinStock        int64           `json:"sin_stock"`
	ValorInventario decimal.Decimal `json:"valor_inventario"`
}
