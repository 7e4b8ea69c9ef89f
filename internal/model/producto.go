package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockMinimoPorDefecto is the low-stock threshold applied when none is given.
const StockMinimoPorDefecto = 5

// Producto is a sellable catalog item.
// Codigo is optional; when present it is unique (NULLs never collide).
// StockActual is only decremented by the sale engine, which refuses to take it below zero.
type Producto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Codigo      *string         `gorm:"uniqueIndex"`
	Nombre      string          `gorm:"index;not null"`
	CategoriaID *uuid.UUID      `gorm:"type:uuid;index"`
	PrecioCosto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockActual int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:5"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeCreate(*gorm.DB) error {
	asignarID(&p.ID)
	return nil
}

// StockBajo reports 0 < stock <= minimo.
func (p *Producto) StockBajo() bool {
	return p.StockActual > 0 && p.StockActual <= p.StockMinimo
}

// SinStock reports stock == 0.
func (p *Producto) SinStock() bool { return p.StockActual == 0 }

// NombreCategoria returns the joined category name, or "" when uncategorized.
func (p *Producto) NombreCategoria() string {
	if p.Categoria == nil {
		return ""
	}
	return p.Categoria.Nombre
}
