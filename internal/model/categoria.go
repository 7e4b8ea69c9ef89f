package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categoria groups products on the shelf. Nombre is unique.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }

func (c *Categoria) BeforeCreate(*gorm.DB) error {
	asignarID(&c.ID)
	return nil
}

// CategoriaSemilla is a category installed on an empty catalog.
type CategoriaSemilla struct {
	Nombre      string
	Descripcion string
}

// CategoriasPorDefecto is the seed list installed once when no category exists.
var CategoriasPorDefecto = []CategoriaSemilla{
	{"Bebidas", "Bebidas y refrescos"},
	{"Snacks", "Snacks y picadas"},
	{"Cigarrillos", "Cigarrillos y tabaco"},
	{"Golosinas", "Golosinas y chocolates"},
	{"Lácteos", "Productos lácteos"},
	{"Panadería", "Panadería y facturería"},
	{"Limpieza", "Artículos de limpieza"},
	{"Otros", "Otros productos"},
}

func asignarID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
