package repository

import (
	"context"

	"kioscopos/internal/model"

	"gorm.io/gorm"
)

// CajaRepository persists the daily open/close cycles of the register.
type CajaRepository interface {
	UltimaApertura(ctx context.Context, fecha string) (*model.AperturaCaja, error)
	CierreDeCiclo(ctx context.Context, fecha string, ciclo int) (*model.CierreCaja, error)
	ListAperturas(ctx context.Context, rango Rango) ([]model.AperturaCaja, error)
	ListCierres(ctx context.Context, rango Rango) ([]model.CierreCaja, error)

	UltimaAperturaTx(tx *gorm.DB, fecha string) (*model.AperturaCaja, error)
	CierreDeCicloTx(tx *gorm.DB, fecha string, ciclo int) (*model.CierreCaja, error)
	UltimoCierreTx(tx *gorm.DB, fecha string) (*model.CierreCaja, error)
	CreateAperturaTx(tx *gorm.DB, a *model.AperturaCaja) error
	CreateCierreTx(tx *gorm.DB, c *model.CierreCaja) error

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) UltimaApertura(ctx context.Context, fecha string) (*model.AperturaCaja, error) {
	return r.UltimaAperturaTx(r.db.WithContext(ctx), fecha)
}

func (r *cajaRepo) UltimaAperturaTx(tx *gorm.DB, fecha string) (*model.AperturaCaja, error) {
	var a model.AperturaCaja
	return encontrado(&a, tx.Where("fecha = ?", fecha).Order("ciclo DESC").First(&a).Error)
}

func (r *cajaRepo) CierreDeCiclo(ctx context.Context, fecha string, ciclo int) (*model.CierreCaja, error) {
	return r.CierreDeCicloTx(r.db.WithContext(ctx), fecha, ciclo)
}

func (r *cajaRepo) CierreDeCicloTx(tx *gorm.DB, fecha string, ciclo int) (*model.CierreCaja, error) {
	var c model.CierreCaja
	return encontrado(&c, tx.Where("fecha = ? AND ciclo = ?", fecha, ciclo).First(&c).Error)
}

func (r *cajaRepo) UltimoCierreTx(tx *gorm.DB, fecha string) (*model.CierreCaja, error) {
	var c model.CierreCaja
	return encontrado(&c, tx.Where("fecha = ?", fecha).Order("ciclo DESC").First(&c).Error)
}

func (r *cajaRepo) CreateAperturaTx(tx *gorm.DB, a *model.AperturaCaja) error {
	return tx.Create(a).Error
}

func (r *cajaRepo) CreateCierreTx(tx *gorm.DB, c *model.CierreCaja) error {
	return tx.Create(c).Error
}

func (r *cajaRepo) ListAperturas(ctx context.Context, rango Rango) ([]model.AperturaCaja, error) {
	var list []model.AperturaCaja
	q := rango.filtrar(r.db.WithContext(ctx).Model(&model.AperturaCaja{}), "fecha")
	err := q.Order("fecha DESC, ciclo DESC").Find(&list).Error
	return list, err
}

func (r *cajaRepo) ListCierres(ctx context.Context, rango Rango) ([]model.CierreCaja, error) {
	var list []model.CierreCaja
	q := rango.filtrar(r.db.WithContext(ctx).Model(&model.CierreCaja{}), "fecha")
	err := q.Order("fecha DESC, ciclo DESC").Find(&list).Error
	return list, err
}
