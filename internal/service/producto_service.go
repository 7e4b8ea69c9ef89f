package service

import (
	"context"
	"strings"

	"kioscopos/internal/dto"
	"kioscopos/internal/model"
	"kioscopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductoService is the catalog: products, stock corrections and inventory metrics.
// Lookups return (nil, nil) when the product does not exist.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	ActualizarStock(ctx context.Context, id uuid.UUID, stock int) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) (bool, error)
	Metricas(ctx context.Context) (*dto.MetricasInventarioResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	codigo := trimOpcional(req.Codigo)
	categoria := trimOpcional(req.Categoria)

	if nombre == "" {
		return nil, validacion("nombre", "es obligatorio")
	}
	if req.PrecioCosto.IsNegative() {
		return nil, validacion("precio_costo", "no puede ser negativo")
	}
	if req.PrecioVenta.IsNegative() {
		return nil, validacion("precio_venta", "no puede ser negativo")
	}
	p := &model.Producto{
		Codigo:      codigo,
		Nombre:      nombre,
		PrecioCosto: req.PrecioCosto.Round(2),
		PrecioVenta: req.PrecioVenta.Round(2),
		StockActual: 0,
		StockMinimo: model.StockMinimoPorDefecto,
	}
	if req.StockActual != nil {
		if *req.StockActual < 0 {
			return nil, validacion("stock_actual", "no puede ser negativo")
		}
		p.StockActual = *req.StockActual
	}
	if req.StockMinimo != nil {
		if *req.StockMinimo < 0 {
			return nil, validacion("stock_minimo", "no puede ser negativo")
		}
		p.StockMinimo = *req.StockMinimo
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if codigo != nil {
			existente, err := s.repo.FindByCodigoTx(tx, *codigo)
			if err != nil {
				return err
			}
			if existente != nil {
				return conflicto(ErrCodigoDuplicado, *codigo)
			}
		}
		if categoria != nil {
			cat, err := s.categoriaRepo.ObtenerPorNombreTx(tx, *categoria)
			if err != nil {
				return err
			}
			if cat == nil {
				cat = &model.Categoria{Nombre: *categoria}
				if err := s.categoriaRepo.CrearTx(tx, cat); err != nil {
					return err
				}
				log.Info().Str("categoria", cat.Nombre).Msg("category created implicitly")
			}
			p.CategoriaID = &cat.ID
			p.Categoria = cat
		}
		if err := s.repo.CreateTx(tx, p); err != nil {
			if codigo != nil && esViolacionUnica(err) {
				return conflicto(ErrCodigoDuplicado, *codigo)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, persistencia("crear producto", err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, persistencia("listar productos", err)
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, persistencia("buscar producto", err)
	}
	if p == nil {
		return nil, nil
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, nil
	}
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, persistencia("buscar producto", err)
	}
	if p == nil {
		return nil, nil
	}
	return productoToResponse(p), nil
}

// ActualizarStock is a manual correction: it overwrites the stock level.
// Returns (nil, nil) for an unknown product.
func (s *productoService) ActualizarStock(ctx context.Context, id uuid.UUID, stock int) (*dto.ProductoResponse, error) {
	if stock < 0 {
		return nil, validacion("stock", "no puede ser negativo")
	}
	ok, err := s.repo.SetStock(ctx, id, stock)
	if err != nil {
		return nil, persistencia("actualizar stock", err)
	}
	if !ok {
		return nil, nil
	}
	return s.ObtenerPorID(ctx, id)
}

// Eliminar hard-deletes the product. Past sale lines keep their captured name and price.
func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, persistencia("eliminar producto", err)
	}
	return ok, nil
}

func (s *productoService) Metricas(ctx context.Context) (*dto.MetricasInventarioResponse, error) {
	m, err := s.repo.Metricas(ctx)
	if err != nil {
		return nil, persistencia("métricas de inventario", err)
	}
	return &dto.MetricasInventarioResponse{
		TotalProductos:  m.TotalProductos,
		StockBajo:       m.StockBajo,
		SinStock:        m.SinStock,
		ValorInventario: m.ValorInventario,
	}, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:          p.ID.String(),
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		PrecioCosto: p.PrecioCosto,
		PrecioVenta: p.PrecioVenta,
		StockActual: p.StockActual,
		StockMinimo: p.StockMinimo,
		StockBajo:   p.StockBajo(),
		SinStock:    p.SinStock(),
		CreatedAt:   hora(p.CreatedAt),
	}
	if p.CategoriaID != nil {
		id := p.CategoriaID.String()
		resp.CategoriaID = &id
	}
	if p.Categoria != nil {
		nombre := p.Categoria.Nombre
		resp.Categoria = &nombre
	}
	return resp
}
