package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// A calendar date may hold several open/close cycles (reopening after a close).
// (Fecha, Ciclo) is unique for both records; the highest Ciclo is the active one.

// AperturaCaja records the opening of cycle Ciclo on Fecha.
type AperturaCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Fecha        string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_apertura_fecha_ciclo"`
	Ciclo        int             `gorm:"not null;uniqueIndex:idx_apertura_fecha_ciclo"`
	MontoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas        *string
	CreatedAt    time.Time
}

func (AperturaCaja) TableName() string { return "aperturas_caja" }

func (a *AperturaCaja) BeforeCreate(*gorm.DB) error {
	asignarID(&a.ID)
	return nil
}

// CierreCaja records the close of cycle Ciclo on Fecha.
// TotalIngresos is recomputable from ventas and abonos; Notas is an archival snapshot only.
type CierreCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Fecha         string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_cierre_fecha_ciclo"`
	Ciclo         int             `gorm:"not null;uniqueIndex:idx_cierre_fecha_ciclo"`
	TotalIngresos decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas         *string
	CreatedAt     time.Time
}

func (CierreCaja) TableName() string { return "cierres_caja" }

func (c *CierreCaja) BeforeCreate(*gorm.DB) error {
	asignarID(&c.ID)
	return nil
}

// EstadoCaja is the three-way opening status of a date.
type EstadoCaja string

const (
	CajaNoAbierta EstadoCaja = "no_abierta"
	CajaAbierta   EstadoCaja = "abierta"
	CajaCerrada   EstadoCaja = "cerrada"
)

// Modelos lists every persisted model, in dependency order, for AutoMigrate.
func Modelos() []interface{} {
	return []interface{}{
		&Categoria{},
		&Producto{},
		&Cliente{},
		&Venta{},
		&VentaItem{},
		&Abono{},
		&AperturaCaja{},
		&CierreCaja{},
	}
}
