package service

import (
	"context"
	"strings"
	"time"

	"kioscopos/internal/clock"
	"kioscopos/internal/dto"
	"kioscopos/internal/infra"
	"kioscopos/internal/model"
	"kioscopos/internal/repository"
	"kioscopos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListarPorFecha(ctx context.Context, fecha string) ([]dto.VentaResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	locker       Locker
	dispatcher   *worker.Dispatcher
	clock        clock.Clock
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	locker Locker,
	dispatcher *worker.Dispatcher,
	c clock.Clock,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		locker:       locker,
		dispatcher:   dispatcher,
		clock:        c,
	}
}

type lineaVenta struct {
	productoID *uuid.UUID
	nombre     string
	cantidad   int
	precio     decimal.Decimal
	subtotal   decimal.Decimal
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
//   1. Validate lines; recompute subtotals and total, rejecting caller values that disagree
//   2. Derive estado de pago from the payment method
//   3. Lock the register date, then stamp the sale
//   4. BEGIN TX: header, then per line resolve product, decrement stock
//      conditionally and insert the line; raise the customer balance when on account
//   5. COMMIT
//   6. (async) render the PDF ticket

func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	lineas, total, err := validarLineas(req)
	if err != nil {
		return nil, err
	}

	metodo := model.NormalizarMetodoPago(req.MetodoPago)
	if metodo == "" {
		return nil, validacion("metodo_pago", "es obligatorio")
	}
	estado := metodo.EstadoPago()
	if !metodo.Conocido() {
		log.Info().Str("metodo_pago", string(metodo)).Msg("método de pago personalizado")
	}

	clienteID, err := parseUUIDOpcional("cliente_id", req.ClienteID)
	if err != nil {
		return nil, err
	}
	if estado == model.EstadoCuentaCorriente && clienteID == nil {
		return nil, validacion("cliente_id", "es obligatorio para ventas a cuenta corriente")
	}

	now, unlock, err := s.lockAhora(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	venta := &model.Venta{
		ClienteID:   clienteID,
		Total:       total,
		MetodoPago:  metodo,
		EstadoPago:  estado,
		TipoCliente: strings.TrimSpace(req.TipoCliente),
		Fecha:       clock.Fecha(now),
		CreatedAt:   now,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if clienteID != nil {
			cliente, err := s.clienteRepo.FindByIDTx(tx, *clienteID)
			if err != nil {
				return err
			}
			if cliente == nil {
				return validacion("cliente_id", "el cliente %s no existe", clienteID.String())
			}
			venta.Cliente = cliente
			if venta.TipoCliente == "" {
				venta.TipoCliente = cliente.Nombre
			}
		}
		if venta.TipoCliente == "" {
			venta.TipoCliente = model.ConsumidorFinal
		}

		if err := s.repo.CreateTx(tx, venta); err != nil {
			return err
		}
		venta.Items = make([]model.VentaItem, 0, len(lineas))
		for _, l := range lineas {
			item, err := s.registrarLinea(tx, venta.ID, l)
			if err != nil {
				return err
			}
			venta.Items = append(venta.Items, *item)
		}

		if estado == model.EstadoCuentaCorriente {
			if _, err := s.clienteRepo.AjustarSaldoTx(tx, *clienteID, total); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("fecha", venta.Fecha).Msg("venta rolled back")
		return nil, persistencia("registrar venta", err)
	}

	infra.VentasRegistradas.WithLabelValues(string(estado)).Inc()
	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("total", total.StringFixed(2)).
		Str("metodo_pago", string(metodo)).
		Str("estado_pago", string(estado)).
		Int("items", len(venta.Items)).
		Msg("venta registrada")

	if err := s.dispatcher.EnqueueTicket(ctx, worker.TicketJobPayload{VentaID: venta.ID.String()}); err != nil {
		log.Error().Err(err).Str("venta_id", venta.ID.String()).Msg("failed to enqueue ticket job")
	}
	return ventaToResponse(venta), nil
}

// lockAhora locks the register for today and reads the sale time only once the
// lock is held, so a sale that waited behind a close is stamped after it. If
// the date rolled over while waiting it locks the new date instead.
func (s *ventaService) lockAhora(ctx context.Context) (time.Time, func(), error) {
	for {
		fecha := clock.Fecha(s.clock.Now())
		unlock, err := lockCaja(ctx, s.locker, fecha)
		if err != nil {
			return time.Time{}, nil, err
		}
		now := s.clock.Now()
		if clock.Fecha(now) == fecha {
			return now, unlock, nil
		}
		unlock()
	}
}

// registrarLinea resolves the catalog product (by id, else by exact name),
// decrements its stock when enough units remain, and inserts the line.
func (s *ventaService) registrarLinea(tx *gorm.DB, ventaID uuid.UUID, l lineaVenta) (*model.VentaItem, error) {
	var producto *model.Producto
	var err error
	if l.productoID != nil {
		if producto, err = s.productoRepo.FindByIDTx(tx, *l.productoID); err != nil {
			return nil, err
		}
	}
	if producto == nil {
		if producto, err = s.productoRepo.FindByNombreTx(tx, l.nombre); err != nil {
			return nil, err
		}
	}

	item := &model.VentaItem{
		VentaID:        ventaID,
		NombreProducto: l.nombre,
		Cantidad:       l.cantidad,
		PrecioUnitario: l.precio,
		Subtotal:       l.subtotal,
	}
	if producto != nil {
		ok, err := s.productoRepo.DescontarStockTx(tx, producto.ID, l.cantidad)
		if err != nil {
			return nil, err
		}
		if !ok {
			disponible := producto.StockActual
			if actual, err := s.productoRepo.FindByIDTx(tx, producto.ID); err == nil && actual != nil {
				disponible = actual.StockActual
			}
			return nil, &StockInsuficienteError{Producto: producto.Nombre, Disponible: disponible, Solicitado: l.cantidad}
		}
		item.ProductoID = &producto.ID
	}
	if err := s.repo.CreateItemTx(tx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// validarLineas checks every line and returns the recomputed lines and total.
func validarLineas(req dto.RegistrarVentaRequest) ([]lineaVenta, decimal.Decimal, error) {
	if len(req.Items) == 0 {
		return nil, decimal.Zero, validacion("items", "la venta debe tener al menos un producto")
	}
	lineas := make([]lineaVenta, 0, len(req.Items))
	total := decimal.Zero
	for i, it := range req.Items {
		nombre := strings.TrimSpace(it.Nombre)
		if nombre == "" {
			return nil, decimal.Zero, validacion("items", "línea %d: el nombre es obligatorio", i+1)
		}
		if it.Cantidad <= 0 {
			return nil, decimal.Zero, validacion("items", "línea %d: la cantidad debe ser mayor a cero", i+1)
		}
		if it.PrecioUnitario.IsNegative() {
			return nil, decimal.Zero, validacion("items", "línea %d: el precio no puede ser negativo", i+1)
		}
		precio := it.PrecioUnitario.Round(2)
		subtotal := precio.Mul(decimal.NewFromInt(int64(it.Cantidad))).Round(2)
		if it.Subtotal != nil && !it.Subtotal.Round(2).Equal(subtotal) {
			return nil, decimal.Zero, validacion("items", "línea %d: subtotal %s no coincide con %s",
				i+1, it.Subtotal.StringFixed(2), subtotal.StringFixed(2))
		}
		productoID, err := parseUUIDOpcional("producto_id", it.ProductoID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		lineas = append(lineas, lineaVenta{
			productoID: productoID,
			nombre:     nombre,
			cantidad:   it.Cantidad,
			precio:     precio,
			subtotal:   subtotal,
		})
		total = total.Add(subtotal)
	}
	if req.Total != nil && !req.Total.Round(2).Equal(total) {
		return nil, decimal.Zero, validacion("total", "%s no coincide con la suma de subtotales %s",
			req.Total.StringFixed(2), total.StringFixed(2))
	}
	return lineas, total, nil
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, persistencia("buscar venta", err)
	}
	if v == nil {
		return nil, nil
	}
	return ventaToResponse(v), nil
}

func (s *ventaService) ListarPorFecha(ctx context.Context, fecha string) ([]dto.VentaResponse, error) {
	fecha, err := fechaOHoy(s.clock, fecha)
	if err != nil {
		return nil, err
	}
	ventas, err := s.repo.ListByRango(ctx, repository.Rango{Desde: fecha, Hasta: fecha})
	if err != nil {
		return nil, persistencia("listar ventas", err)
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			ID:             it.ID.String(),
			ProductoID:     uuidOpcional(it.ProductoID),
			NombreProducto: it.NombreProducto,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:            v.ID.String(),
		ClienteID:     uuidOpcional(v.ClienteID),
		ClienteNombre: v.NombreCliente(),
		TipoCliente:   v.TipoCliente,
		Total:         v.Total,
		MetodoPago:    string(v.MetodoPago),
		EstadoPago:    string(v.EstadoPago),
		Fecha:         v.Fecha,
		CreatedAt:     hora(v.CreatedAt),
		Items:         items,
	}
}
