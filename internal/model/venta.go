package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MetodoPago is how a sale or abono was paid.
// The four constants are the known methods; any other value is a custom label
// kept verbatim (e.g. "Mercado Pago").
type MetodoPago string

const (
	MetodoEfectivo        MetodoPago = "Efectivo"
	MetodoTransferencia   MetodoPago = "Transferencia"
	MetodoDebito          MetodoPago = "Débito"
	MetodoCuentaCorriente MetodoPago = "Cuenta Corriente"
)

// NormalizarMetodoPago maps free-text labels onto the known methods and keeps
// anything else as a trimmed custom label.
func NormalizarMetodoPago(s string) MetodoPago {
	label := strings.TrimSpace(s)
	l := strings.ToLower(label)
	switch {
	case l == "":
		return ""
	case strings.Contains(l, "cuenta corriente"):
		return MetodoCuentaCorriente
	case strings.Contains(l, "efectivo"):
		return MetodoEfectivo
	case strings.Contains(l, "transferencia"):
		return MetodoTransferencia
	case strings.Contains(l, "débito"), strings.Contains(l, "debito"):
		return MetodoDebito
	}
	return MetodoPago(label)
}

// Conocido reports whether m is one of the four known methods.
func (m MetodoPago) Conocido() bool {
	switch m {
	case MetodoEfectivo, MetodoTransferencia, MetodoDebito, MetodoCuentaCorriente:
		return true
	}
	return false
}

// EstadoPago derives the payment status: on-account iff the method is Cuenta Corriente.
func (m MetodoPago) EstadoPago() EstadoPago {
	if m == MetodoCuentaCorriente {
		return EstadoCuentaCorriente
	}
	return EstadoPagado
}

// EstadoPago: "pagado" | "cuenta_corriente"
type EstadoPago string

const (
	EstadoPagado          EstadoPago = "pagado"
	EstadoCuentaCorriente EstadoPago = "cuenta_corriente"
)

// Venta is an immutable sale header. Total always equals the sum of its items' subtotals.
// Fecha is the UTC-3 calendar date of CreatedAt, stored for date-range queries.
type Venta struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClienteID   *uuid.UUID      `gorm:"type:uuid;index"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago  MetodoPago      `gorm:"type:varchar(50);not null"`
	EstadoPago  EstadoPago      `gorm:"type:varchar(20);not null;index"`
	TipoCliente string          `gorm:"type:varchar(50);not null"`
	Fecha       string          `gorm:"type:varchar(10);index;not null"`
	CreatedAt   time.Time

	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Items   []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

func (v *Venta) BeforeCreate(*gorm.DB) error {
	asignarID(&v.ID)
	return nil
}

// NombreCliente returns the linked customer's name or Consumidor Final.
func (v *Venta) NombreCliente() string {
	if v.Cliente != nil && v.Cliente.Nombre != "" {
		return v.Cliente.Nombre
	}
	return ConsumidorFinal
}

// VentaItem is a sale line. NombreProducto and PrecioUnitario are captured at sale
// time and never follow later catalog edits. ProductoID is nil when the line could
// not be matched to a catalog product; such lines move no stock.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     *uuid.UUID      `gorm:"type:uuid;index"`
	NombreProducto string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (VentaItem) TableName() string { return "venta_items" }

func (i *VentaItem) BeforeCreate(*gorm.DB) error {
	asignarID(&i.ID)
	return nil
}
