package repository

import (
	"context"

	"kioscopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MetricasInventario are the derived catalog figures shown on the inventory screen.
type MetricasInventario struct {
	TotalProductos  int64
	StockBajo       int64
	SinStock        int64
	ValorInventario decimal.Decimal
}

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Metricas(ctx context.Context) (MetricasInventario, error)

	// Used inside transactions; callers pass the tx handle
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	FindByNombreTx(tx *gorm.DB, nombre string) (*model.Producto, error)
	FindByCodigoTx(tx *gorm.DB, codigo string) (*model.Producto, error)
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Omit("Categoria").Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	return encontrado(&p, tx.Preload("Categoria").First(&p, "id = ?", id).Error)
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	return r.FindByCodigoTx(r.db.WithContext(ctx), codigo)
}

func (r *productoRepo) FindByCodigoTx(tx *gorm.DB, codigo string) (*model.Producto, error) {
	var p model.Producto
	return encontrado(&p, tx.Preload("Categoria").Where("codigo = ?", codigo).First(&p).Error)
}

// FindByNombreTx matches the exact product name; the oldest product wins on duplicates.
func (r *productoRepo) FindByNombreTx(tx *gorm.DB, nombre string) (*model.Producto, error) {
	var p model.Producto
	return encontrado(&p, tx.Where("nombre = ?", nombre).Order("created_at ASC").First(&p).Error)
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").Order("nombre ASC").Find(&productos).Error
	return productos, err
}

// SetStock overwrites stock_actual; it reports false when the product does not exist.
func (r *productoRepo) SetStock(ctx context.Context, id uuid.UUID, stock int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("stock_actual", stock)
	return res.RowsAffected > 0, res.Error
}

// DescontarStockTx decrements stock only when enough units remain.
// It reports false, touching nothing, when the decrement would go below zero.
func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock_actual >= ?", id, cantidad).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad))
	return res.RowsAffected > 0, res.Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *productoRepo) Metricas(ctx context.Context) (MetricasInventario, error) {
	var m struct {
		TotalProductos  int64
		StockBajo       int64
		SinStock        int64
		ValorInventario decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Select(`
		COUNT(*) AS total_productos,
		COALESCE(SUM(CASE WHEN stock_actual > 0 AND stock_actual <= stock_minimo THEN 1 ELSE 0 END), 0) AS stock_bajo,
		COALESCE(SUM(CASE WHEN stock_actual = 0 THEN 1 ELSE 0 END), 0) AS sin_stock,
		COALESCE(SUM(CASE WHEN stock_actual > 0 THEN stock_actual * precio_costo ELSE 0 END), 0) AS valor_inventario`).
		Scan(&m).Error
	if err != nil {
		return MetricasInventario{}, err
	}
	return MetricasInventario{
		TotalProductos:  m.TotalProductos,
		StockBajo:       m.StockBajo,
		SinStock:        m.SinStock,
		ValorInventario: m.ValorInventario.Round(2),
	}, nil
}
