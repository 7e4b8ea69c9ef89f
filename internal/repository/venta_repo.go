package repository

import (
	"context"

	"kioscopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	CreateItemTx(tx *gorm.DB, item *model.VentaItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	ListByRango(ctx context.Context, rango Rango) ([]model.Venta, error)
	// SumPagadasTx totals settled sales (estado_pago = pagado) on fecha.
	SumPagadasTx(tx *gorm.DB, fecha string) (decimal.Decimal, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

// CreateTx inserts the header only; items are inserted one by one with CreateItemTx.
func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Omit("Items", "Cliente").Create(v).Error
}

func (r *ventaRepo) CreateItemTx(tx *gorm.DB, item *model.VentaItem) error {
	return tx.Create(item).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").Preload("Cliente").First(&v, "id = ?", id).Error
	return encontrado(&v, err)
}

// ListByRango returns sales with items and customer, newest first.
func (r *ventaRepo) ListByRango(ctx context.Context, rango Rango) ([]model.Venta, error) {
	var ventas []model.Venta
	q := rango.filtrar(r.db.WithContext(ctx).Model(&model.Venta{}), "fecha")
	err := q.Preload("Items").Preload("Cliente").Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) SumPagadasTx(tx *gorm.DB, fecha string) (decimal.Decimal, error) {
	var s suma
	err := tx.Model(&model.Venta{}).Select("COALESCE(SUM(total), 0) AS total").
		Where("fecha = ? AND estado_pago = ?", fecha, model.EstadoPagado).Scan(&s).Error
	return s.Total.Round(2), err
}
