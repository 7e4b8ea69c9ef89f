package repository

import (
	"context"

	"kioscopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaRepository defines CRUD operations for Categoria.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	CrearTx(tx *gorm.DB, c *model.Categoria) error
	Listar(ctx context.Context) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	ObtenerPorNombreTx(tx *gorm.DB, nombre string) (*model.Categoria, error)
	ContarProductos(ctx context.Context, id uuid.UUID) (int64, error)
	Contar(ctx context.Context) (int64, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepository) CrearTx(tx *gorm.DB, c *model.Categoria) error {
	return tx.Create(c).Error
}

func (r *categoriaRepository) Listar(ctx context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	return encontrado(&c, r.db.WithContext(ctx).First(&c, "id = ?", id).Error)
}

func (r *categoriaRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	return r.ObtenerPorNombreTx(r.db.WithContext(ctx), nombre)
}

func (r *categoriaRepository) ObtenerPorNombreTx(tx *gorm.DB, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	return encontrado(&c, tx.Where("lower(nombre) = lower(?)", nombre).First(&c).Error)
}

func (r *categoriaRepository) ContarProductos(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("categoria_id = ?", id).Count(&n).Error
	return n, err
}

func (r *categoriaRepository) Contar(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Categoria{}).Count(&n).Error
	return n, err
}

func (r *categoriaRepository) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Categoria{}, "id = ?", id).Error
}
