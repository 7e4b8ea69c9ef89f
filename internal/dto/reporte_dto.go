package dto

import "github.com/shopspring/decimal"

type TopProductosQuery struct {
	RangoQuery
	Limit int `form:"limit,default=10" validate:"min=1,max=100"`
}

type ResumenResponse struct {
	Desde             string          `json:"desde,omitempty"`
	Hasta             string          `json:"hasta,omitempty"`
	Cantidad          int64           `json:"cantidad"`
	Total             decimal.Decimal `json:"total"`
	TicketPromedio    decimal.Decimal `json:"ticket_promedio"`
	TiposClienteUnico int64           `json:"tipos_cliente_unico"`
}

type ProductoVendidoResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int64           `json:"cantidad"`
	Monto      decimal.Decimal `json:"monto"`
}

// VentaHoraResponse is one of 24 hour-of-day buckets (local time).
type VentaHoraResponse struct {
	Hora     int             `json:"hora"`
	Cantidad int64           `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

type MetodoPagoResponse struct {
	MetodoPago string          `json:"metodo_pago"`
	Cantidad   int64           `json:"cantidad"`
	Monto      decimal.Decimal `json:"monto"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

// MovimientoResponse is a row of the daily movements screen: a sale or an abono.
type MovimientoResponse struct {
	ID         string          `json:"id"`
	Tipo       string          `json:"tipo"` // venta | abono
	Hora       string          `json:"hora"`
	Cliente    string          `json:"cliente"`
	Productos  string          `json:"productos"`
	Total      decimal.Decimal `json:"total"`
	MetodoPago string          `json:"metodo_pago"`
	EstadoPago string          `json:"estado_pago"`
}

// VentaReporteResponse is a per-sale line of the sales report.
type VentaReporteResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Hora        string          `json:"hora"`
	TipoCliente string          `json:"tipo_cliente"`
	MetodoPago  string          `json:"metodo_pago"`
	EstadoPago  string          `json:"estado_pago"`
	Items       int             `json:"items"`
	Descripcion string          `json:"descripcion"`
	Total       decimal.Decimal `json:"total"`
}

// VariacionResponse holds period-over-period growth in percent.
type VariacionResponse struct {
	Total             decimal.Decimal `json:"total"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	TicketPromedio    decimal.Decimal `json:"ticket_promedio"`
	TiposClienteUnico decimal.Decimal `json:"tipos_cliente_unico"`
	ProductosVendidos decimal.Decimal `json:"productos_vendidos"`
}

type DashboardResponse struct {
	Resumen                   ResumenResponse           `json:"resumen"`
	PeriodoAnterior           ResumenResponse           `json:"periodo_anterior"`
	ProductosVendidos         int64                     `json:"productos_vendidos"`
	ProductosVendidosAnterior int64                     `json:"productos_vendidos_anterior"`
	Variacion                 VariacionResponse         `json:"variacion"`
	TopProductos              []ProductoVendidoResponse `json:"top_productos"`
	PorHora                   []VentaHoraResponse       `json:"por_hora"`
	MetodosPago               []MetodoPagoResponse      `json:"metodos_pago"`
	Ventas                    []VentaReporteResponse    `json:"ventas"`
}
