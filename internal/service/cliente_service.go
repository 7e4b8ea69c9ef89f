package service

import (
	"context"
	"strings"

	"kioscopos/internal/clock"
	"kioscopos/internal/dto"
	"kioscopos/internal/model"
	"kioscopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ttacon/libphonenumber"
	"gorm.io/gorm"
)

// regionTelefonos is the default region for numbers entered without a country code.
const regionTelefonos = "AR"

// ClienteService is the customer ledger: customers and their running-account payments.
type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	RegistrarAbono(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error)
	AbonosPorFecha(ctx context.Context, fecha string) ([]dto.AbonoResponse, error)
	AbonosPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.AbonoResponse, error)
}

type clienteService struct {
	repo  repository.ClienteRepository
	clock clock.Clock
}

func NewClienteService(repo repository.ClienteRepository, c clock.Clock) ClienteService {
	return &clienteService{repo: repo, clock: c}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, validacion("nombre", "es obligatorio")
	}
	telefono, err := normalizarTelefono(req.Telefono)
	if err != nil {
		return nil, err
	}
	c := &model.Cliente{Nombre: nombre, Telefono: telefono}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, persistencia("crear cliente", err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, persistencia("listar clientes", err)
	}
	out := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		out = append(out, *clienteToResponse(&list[i]))
	}
	return out, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, persistencia("buscar cliente", err)
	}
	if c == nil {
		return nil, nil
	}
	return clienteToResponse(c), nil
}

// RegistrarAbono records a payment against the customer's running account and
// lowers the balance in the same transaction. Paying more than the balance is
// allowed and leaves a credit (negative balance).
// Returns (nil, nil) when the customer does not exist.
func (s *clienteService) RegistrarAbono(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, validacion("monto", "debe ser mayor a cero")
	}
	metodo := model.NormalizarMetodoPago(req.MetodoPago)
	if metodo == "" {
		return nil, validacion("metodo_pago", "es obligatorio")
	}
	if metodo == model.MetodoCuentaCorriente {
		return nil, validacion("metodo_pago", "un abono no puede pagarse a cuenta corriente")
	}
	ventaID, err := parseUUIDOpcional("venta_id", req.VentaID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	abono := &model.Abono{
		ClienteID:  clienteID,
		VentaID:    ventaID,
		Monto:      req.Monto.Round(2),
		MetodoPago: metodo,
		Fecha:      clock.Fecha(now),
		CreatedAt:  now,
	}
	var cliente *model.Cliente
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.AjustarSaldoTx(tx, clienteID, abono.Monto.Neg())
		if err != nil || !ok {
			return err
		}
		if err := s.repo.CreateAbonoTx(tx, abono); err != nil {
			return err
		}
		cliente, err = s.repo.FindByIDTx(tx, clienteID)
		return err
	})
	if err != nil {
		return nil, persistencia("registrar abono", err)
	}
	if cliente == nil {
		return nil, nil
	}
	abono.Cliente = cliente

	log.Info().
		Str("cliente_id", clienteID.String()).
		Str("monto", abono.Monto.StringFixed(2)).
		Str("saldo", cliente.SaldoCuentaCorriente.StringFixed(2)).
		Msg("abono registrado")

	resp := abonoToResponse(abono)
	resp.SaldoRestante = cliente.SaldoCuentaCorriente
	return &resp, nil
}

func (s *clienteService) AbonosPorFecha(ctx context.Context, fecha string) ([]dto.AbonoResponse, error) {
	fecha, err := fechaOHoy(s.clock, fecha)
	if err != nil {
		return nil, err
	}
	abonos, err := s.repo.ListAbonosPorFecha(ctx, fecha)
	if err != nil {
		return nil, persistencia("listar abonos", err)
	}
	out := make([]dto.AbonoResponse, 0, len(abonos))
	for i := range abonos {
		out = append(out, abonoToResponse(&abonos[i]))
	}
	return out, nil
}

// AbonosPorCliente is the customer's payment statement, newest first.
// Returns (nil, nil) when the customer does not exist.
func (s *clienteService) AbonosPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.AbonoResponse, error) {
	cliente, err := s.repo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, persistencia("buscar cliente", err)
	}
	if cliente == nil {
		return nil, nil
	}
	abonos, err := s.repo.ListAbonosPorCliente(ctx, clienteID)
	if err != nil {
		return nil, persistencia("listar abonos", err)
	}
	out := make([]dto.AbonoResponse, 0, len(abonos))
	for i := range abonos {
		a := abonoToResponse(&abonos[i])
		a.ClienteNombre = cliente.Nombre
		out = append(out, a)
	}
	return out, nil
}

// normalizarTelefono stores phones in E.164, assuming Argentina when no country code is given.
func normalizarTelefono(raw *string) (*string, error) {
	t := trimOpcional(raw)
	if t == nil {
		return nil, nil
	}
	num, err := libphonenumber.Parse(*t, regionTelefonos)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return nil, validacion("telefono", "número inválido: %s", *t)
	}
	e164 := libphonenumber.Format(num, libphonenumber.E164)
	return &e164, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:                   c.ID.String(),
		Nombre:               c.Nombre,
		Telefono:             c.Telefono,
		SaldoCuentaCorriente: c.SaldoCuentaCorriente,
		CreatedAt:            hora(c.CreatedAt),
	}
}

func abonoToResponse(a *model.Abono) dto.AbonoResponse {
	resp := dto.AbonoResponse{
		ID:         a.ID.String(),
		ClienteID:  a.ClienteID.String(),
		VentaID:    uuidOpcional(a.VentaID),
		Monto:      a.Monto,
		MetodoPago: string(a.MetodoPago),
		Fecha:      a.Fecha,
		CreatedAt:  hora(a.CreatedAt),
	}
	if a.Cliente != nil {
		resp.ClienteNombre = a.Cliente.Nombre
		resp.SaldoRestante = a.Cliente.SaldoCuentaCorriente
	}
	return resp
}
