// Package repository holds the GORM data access layer.
// Services depend on the interfaces declared here, never on *gorm.DB queries directly.
// Lookups return (nil, nil) when nothing matches; absence is not an error.
package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Rango is an inclusive YYYY-MM-DD date range. The zero value means "all dates".
type Rango struct {
	Desde string
	Hasta string
}

// Vacio reports whether the range is unbounded.
func (r Rango) Vacio() bool { return r.Desde == "" && r.Hasta == "" }

// filtrar restricts q to rows whose fecha column falls within r.
func (r Rango) filtrar(q *gorm.DB, columna string) *gorm.DB {
	if r.Vacio() {
		return q
	}
	return q.Where(columna+" BETWEEN ? AND ?", r.Desde, r.Hasta)
}

// suma scans a single aggregated amount; used with SELECT COALESCE(SUM(x), 0) AS total.
type suma struct {
	Total decimal.Decimal
}

func encontrado[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
