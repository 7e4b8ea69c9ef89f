package repository

import (
	"context"
	"time"

	"kioscopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenVentas is the sales summary shape shared by the current and previous period.
type ResumenVentas struct {
	Cantidad          int64
	Total             decimal.Decimal
	Promedio          decimal.Decimal
	TiposClienteUnico int64
}

type ProductoVendido struct {
	ProductoID uuid.UUID
	Nombre     string
	Cantidad   int64
	Monto      decimal.Decimal
}

type MetodoPagoResumen struct {
	MetodoPago string
	Cantidad   int64
	Monto      decimal.Decimal
}

// VentaHora is the minimum needed to bucket a sale by local hour.
type VentaHora struct {
	CreatedAt time.Time
	Total     decimal.Decimal
}

// ReporteRepository runs the read-only aggregations behind the reports screen.
type ReporteRepository interface {
	Resumen(ctx context.Context, rango Rango) (ResumenVentas, error)
	TopProductos(ctx context.Context, rango Rango, limit int) ([]ProductoVendido, error)
	VentasParaHorario(ctx context.Context, rango Rango) ([]VentaHora, error)
	MetodosPago(ctx context.Context, rango Rango) ([]MetodoPagoResumen, error)
	TotalProductosVendidos(ctx context.Context, rango Rango) (int64, error)
	Conteos(ctx context.Context) (map[string]int64, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) Resumen(ctx context.Context, rango Rango) (ResumenVentas, error) {
	var row struct {
		Cantidad          int64
		Total             decimal.Decimal
		TiposClienteUnico int64
	}
	q := rango.filtrar(r.db.WithContext(ctx).Model(&model.Venta{}), "fecha")
	err := q.Select(`COUNT(*) AS cantidad,
		COALESCE(SUM(total), 0) AS total,
		COUNT(DISTINCT tipo_cliente) AS tipos_cliente_unico`).Scan(&row).Error
	if err != nil {
		return ResumenVentas{}, err
	}
	res := ResumenVentas{
		Cantidad:          row.Cantidad,
		Total:             row.Total.Round(2),
		Promedio:          decimal.Zero,
		TiposClienteUnico: row.TiposClienteUnico,
	}
	if row.Cantidad > 0 {
		res.Promedio = row.Total.Div(decimal.NewFromInt(row.Cantidad)).Round(2)
	}
	return res, nil
}

// TopProductos ranks catalog products by units sold; ties go to the lower product id.
// Lines that never resolved to a product are not ranked.
func (r *reporteRepo) TopProductos(ctx context.Context, rango Rango, limit int) ([]ProductoVendido, error) {
	var rows []ProductoVendido
	q := r.db.WithContext(ctx).Table("venta_items AS vi").
		Joins("JOIN productos AS p ON p.id = vi.producto_id").
		Joins("JOIN ventas AS v ON v.id = vi.venta_id")
	q = rango.filtrar(q, "v.fecha")
	err := q.Select(`p.id AS producto_id, p.nombre AS nombre,
		COALESCE(SUM(vi.cantidad), 0) AS cantidad,
		COALESCE(SUM(vi.subtotal), 0) AS monto`).
		Group("p.id, p.nombre").
		Order("cantidad DESC, p.id ASC").
		Limit(limit).
		Scan(&rows).Error
	for i := range rows {
		rows[i].Monto = rows[i].Monto.Round(2)
	}
	return rows, err
}

func (r *reporteRepo) VentasParaHorario(ctx context.Context, rango Rango) ([]VentaHora, error) {
	var rows []VentaHora
	q := rango.filtrar(r.db.WithContext(ctx).Model(&model.Venta{}), "fecha")
	err := q.Select("created_at, total").Order("created_at ASC").Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) MetodosPago(ctx context.Context, rango Rango) ([]MetodoPagoResumen, error) {
	var rows []MetodoPagoResumen
	q := rango.filtrar(r.db.WithContext(ctx).Model(&model.Venta{}), "fecha")
	err := q.Select(`metodo_pago, COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS monto`).
		Group("metodo_pago").
		Order("monto DESC, metodo_pago ASC").
		Scan(&rows).Error
	for i := range rows {
		rows[i].Monto = rows[i].Monto.Round(2)
	}
	return rows, err
}

func (r *reporteRepo) TotalProductosVendidos(ctx context.Context, rango Rango) (int64, error) {
	var row struct{ Total int64 }
	q := r.db.WithContext(ctx).Table("venta_items AS vi").Joins("JOIN ventas AS v ON v.id = vi.venta_id")
	err := rango.filtrar(q, "v.fecha").Select("COALESCE(SUM(vi.cantidad), 0) AS total").Scan(&row).Error
	return row.Total, err
}

// Conteos returns raw row counts per table, for diagnostics and test fixtures.
func (r *reporteRepo) Conteos(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, m := range model.Modelos() {
		var n int64
		if err := r.db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return nil, err
		}
		out[m.(interface{ TableName() string }).TableName()] = n
	}
	return out, nil
}
