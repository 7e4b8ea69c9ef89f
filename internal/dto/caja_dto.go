package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Fecha defaults to today (UTC-3) when empty.
type AbrirCajaRequest struct {
	Fecha        string          `json:"fecha"         validate:"omitempty,datetime=2006-01-02"`
	MontoInicial decimal.Decimal `json:"monto_inicial"`
	Notas        *string         `json:"notas"         validate:"omitempty,max=1000"`
}

type CerrarCajaRequest struct {
	Fecha string  `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Notas *string `json:"notas" validate:"omitempty,max=1000"`
}

type FechaQuery struct {
	Fecha string `form:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// RangoQuery: both dates or neither; inclusive.
type RangoQuery struct {
	Desde string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AperturaResponse struct {
	ID           string          `json:"id"`
	Fecha        string          `json:"fecha"`
	Ciclo        int             `json:"ciclo"`
	MontoInicial decimal.Decimal `json:"monto_inicial"`
	Notas        *string         `json:"notas"`
	CreatedAt    string          `json:"created_at"`
}

type CierreResponse struct {
	ID            string          `json:"id"`
	Fecha         string          `json:"fecha"`
	Ciclo         int             `json:"ciclo"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	Notas         *string         `json:"notas"`
	CreatedAt     string          `json:"created_at"`
}

// EstadoCajaResponse: MontoInicial is set once opened; TotalIngresos once closed.
type EstadoCajaResponse struct {
	Fecha         string           `json:"fecha"`
	Estado        string           `json:"estado"` // no_abierta | abierta | cerrada
	Ciclo         int              `json:"ciclo"`
	MontoInicial  *decimal.Decimal `json:"monto_inicial"`
	TotalIngresos *decimal.Decimal `json:"total_ingresos"`
}

type IngresosResponse struct {
	Fecha         string          `json:"fecha"`
	VentasPagadas decimal.Decimal `json:"ventas_pagadas"`
	Abonos        decimal.Decimal `json:"abonos"`
	Total         decimal.Decimal `json:"total"`
}

type HistorialCajaResponse struct {
	Aperturas []AperturaResponse `json:"aperturas"`
	Cierres   []CierreResponse   `json:"cierres"`
}
