package service

import (
	"context"
	"strings"

	"kioscopos/internal/dto"
	"kioscopos/internal/model"
	"kioscopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CategoriaService defines business operations for product categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) (bool, error)
	// SembrarPorDefecto installs the default categories when the table is empty.
	SembrarPorDefecto(ctx context.Context) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
	}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return dto.CategoriaResponse{}, validacion("nombre", "es obligatorio")
	}

	existing, err := s.repo.ObtenerPorNombre(ctx, nombre)
	if err != nil {
		return dto.CategoriaResponse{}, persistencia("buscar categoría", err)
	}
	if existing != nil {
		return dto.CategoriaResponse{}, conflicto(ErrCategoriaDuplicada, nombre)
	}

	c := &model.Categoria{Nombre: nombre, Descripcion: trimOpcional(req.Descripcion)}
	if err := s.repo.Crear(ctx, c); err != nil {
		if esViolacionUnica(err) {
			return dto.CategoriaResponse{}, conflicto(ErrCategoriaDuplicada, nombre)
		}
		return dto.CategoriaResponse{}, persistencia("crear categoría", err)
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, persistencia("listar categorías", err)
	}
	out := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapCategoria(c))
	}
	return out, nil
}

// Eliminar reports false when the category does not exist.
func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) (bool, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return false, persistencia("buscar categoría", err)
	}
	if c == nil {
		return false, nil
	}
	n, err := s.repo.ContarProductos(ctx, id)
	if err != nil {
		return false, persistencia("contar productos", err)
	}
	if n > 0 {
		return false, &CategoriaEnUsoError{Productos: n}
	}
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return false, persistencia("eliminar categoría", err)
	}
	return true, nil
}

func (s *categoriaService) SembrarPorDefecto(ctx context.Context) error {
	n, err := s.repo.Contar(ctx)
	if err != nil {
		return persistencia("contar categorías", err)
	}
	if n > 0 {
		return nil
	}
	for _, semilla := range model.CategoriasPorDefecto {
		desc := semilla.Descripcion
		if err := s.repo.Crear(ctx, &model.Categoria{Nombre: semilla.Nombre, Descripcion: &desc}); err != nil {
			return persistencia("sembrar categorías", err)
		}
	}
	log.Info().Int("count", len(model.CategoriasPorDefecto)).Msg("default categories installed")
	return nil
}

// trimOpcional trims s and maps blank to nil.
func trimOpcional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
