package repository

import (
	"context"

	"kioscopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClienteRepository covers customers and their running-account payments (abonos).
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	ListAbonosPorFecha(ctx context.Context, fecha string) ([]model.Abono, error)
	ListAbonosPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Abono, error)

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	// AjustarSaldoTx adds delta (may be negative) to the balance; false when the customer is missing.
	AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) (bool, error)
	CreateAbonoTx(tx *gorm.DB, a *model.Abono) error
	SumAbonosTx(tx *gorm.DB, fecha string) (decimal.Decimal, error)

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	return encontrado(&c, tx.First(&c, "id = ?", id).Error)
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var list []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *clienteRepo) AjustarSaldoTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) (bool, error) {
	res := tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("saldo_cuenta_corriente", gorm.Expr("saldo_cuenta_corriente + ?", delta))
	return res.RowsAffected > 0, res.Error
}

func (r *clienteRepo) CreateAbonoTx(tx *gorm.DB, a *model.Abono) error {
	return tx.Omit("Cliente").Create(a).Error
}

func (r *clienteRepo) SumAbonosTx(tx *gorm.DB, fecha string) (decimal.Decimal, error) {
	var s suma
	err := tx.Model(&model.Abono{}).Select("COALESCE(SUM(monto), 0) AS total").
		Where("fecha = ?", fecha).Scan(&s).Error
	return s.Total.Round(2), err
}

func (r *clienteRepo) ListAbonosPorFecha(ctx context.Context, fecha string) ([]model.Abono, error) {
	var abonos []model.Abono
	err := r.db.WithContext(ctx).Preload("Cliente").
		Where("fecha = ?", fecha).Order("created_at DESC").Find(&abonos).Error
	return abonos, err
}

func (r *clienteRepo) ListAbonosPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Abono, error) {
	var abonos []model.Abono
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&abonos).Error
	return abonos, err
}
