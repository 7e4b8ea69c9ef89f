package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConsumidorFinal labels walk-in sales that carry no ledger customer.
const ConsumidorFinal = "Consumidor Final"

// Cliente is a customer with a running account ("cuenta corriente").
// SaldoCuentaCorriente is the outstanding balance: on-account sales raise it, abonos lower it.
type Cliente struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nombre               string          `gorm:"index;not null"`
	Telefono             *string
	SaldoCuentaCorriente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeCreate(*gorm.DB) error {
	asignarID(&c.ID)
	return nil
}

// Abono is a payment received against a customer's running account.
// MetodoPago is how the money was physically received, independent of the original sale.
type Abono struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClienteID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	VentaID    *uuid.UUID      `gorm:"type:uuid"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago MetodoPago      `gorm:"type:varchar(50);not null"`
	Fecha      string          `gorm:"type:varchar(10);index;not null"`
	CreatedAt  time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Abono) TableName() string { return "abonos" }

func (a *Abono) BeforeCreate(*gorm.DB) error {
	asignarID(&a.ID)
	return nil
}
