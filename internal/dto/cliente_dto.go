package dto

import "github.com/shopspring/decimal"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,max=120"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
}

type RegistrarAbonoRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago" validate:"required,max=50"`
	VentaID    *string         `json:"venta_id"    validate:"omitempty,uuid"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID                   string          `json:"id"`
	Nombre               string          `json:"nombre"`
	Telefono             *string         `json:"telefono"`
	SaldoCuentaCorriente decimal.Decimal `json:"saldo_cuenta_corriente"`
	CreatedAt            string          `json:"created_at"`
}

type AbonoResponse struct {
	ID            string          `json:"id"`
	ClienteID     string          `json:"cliente_id"`
	ClienteNombre string          `json:"cliente_nombre"`
	VentaID       *string         `json:"venta_id"`
	Monto         decimal.Decimal `json:"monto"`
	MetodoPago    string          `json:"metodo_pago"`
	Fecha         string          `json:"fecha"`
	CreatedAt     string          `json:"created_at"`
	SaldoRestante decimal.Decimal `json:"saldo_restante"`
}
