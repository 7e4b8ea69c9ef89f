package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"kioscopos/internal/clock"
	"kioscopos/internal/dto"
	"kioscopos/internal/infra"
	"kioscopos/internal/model"
	"kioscopos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	limiteReporteVentas = 100
	productosAbono      = "Abono Cuenta Corriente"
)

// ReporteService is the read-only reporting aggregator.
//
// Only malformed ranges are returned as errors. Storage failures are logged and
// answered with zero values so the reports screen keeps rendering.
type ReporteService interface {
	Resumen(ctx context.Context, q dto.RangoQuery) (*dto.ResumenResponse, error)
	PeriodoAnterior(ctx context.Context, q dto.RangoQuery) (*dto.ResumenResponse, error)
	TopProductos(ctx context.Context, q dto.TopProductosQuery) ([]dto.ProductoVendidoResponse, error)
	VentasPorHora(ctx context.Context, q dto.RangoQuery) ([]dto.VentaHoraResponse, error)
	DistribucionMetodosPago(ctx context.Context, q dto.RangoQuery) ([]dto.MetodoPagoResponse, error)
	MovimientosDetallados(ctx context.Context, fecha string) ([]dto.MovimientoResponse, error)
	ProductosVendidos(ctx context.Context, q dto.RangoQuery) (int64, error)
	ReporteVentas(ctx context.Context, q dto.RangoQuery) ([]dto.VentaReporteResponse, error)
	Dashboard(ctx context.Context, q dto.RangoQuery) (*dto.DashboardResponse, error)
	Conteos(ctx context.Context) (map[string]int64, error)
	ExportarExcel(ctx context.Context, q dto.RangoQuery) ([]byte, error)
}

type reporteService struct {
	repo        repository.ReporteRepository
	ventaRepo   repository.VentaRepository
	clienteRepo repository.ClienteRepository
	clock       clock.Clock
}

func NewReporteService(
	repo repository.ReporteRepository,
	ventaRepo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
	c clock.Clock,
) ReporteService {
	return &reporteService{repo: repo, ventaRepo: ventaRepo, clienteRepo: clienteRepo, clock: c}
}

func (s *reporteService) Resumen(ctx context.Context, q dto.RangoQuery) (*dto.ResumenResponse, error) {
	rango, err := validarRango(q)
	if err != nil {
		return nil, err
	}
	r := s.resumen(ctx, rango)
	return &r, nil
}

func (s *reporteService) resumen(ctx context.Context, rango repository.Rango) dto.ResumenResponse {
	res, err := s.repo.Resumen(ctx, rango)
	if err != nil {
		log.Error().Err(err).Msg("reporte: resumen")
		res = repository.ResumenVentas{Total: decimal.Zero, Promedio: decimal.Zero}
	}
	return dto.ResumenResponse{
		Desde:             rango.Desde,
		Hasta:             rango.Hasta,
		Cantidad:          res.Cantidad,
		Total:             res.Total,
		TicketPromedio:    res.Promedio,
		TiposClienteUnico: res.TiposClienteUnico,
	}
}

// PeriodoAnterior summarizes the window of the same length that ends the day
// before desde. Without a range there is no previous period and zeros come back.
func (s *reporteService) PeriodoAnterior(ctx context.Context, q dto.RangoQuery) (*dto.ResumenResponse, error) {
	rango, err := validarRango(q)
	if err != nil {
		return nil, err
	}
	anterior, ok := periodoAnterior(rango)
	if !ok {
		return &dto.ResumenResponse{Total: decimal.Zero, TicketPromedio: decimal.Zero}, nil
	}
	r := s.resumen(ctx, anterior)
	return &r, nil
}

func periodoAnterior(rango repository.Rango) (repository.Rango, bool) {
	if rango.Vacio() {
		return repository.Rango{}, false
	}
	desde, err1 := clock.ParseFecha(rango.Desde)
	hasta, err2 := clock.ParseFecha(rango.Hasta)
	if err1 != nil || err2 != nil {
		return repository.Rango{}, false
	}
	dias := int(hasta.Sub(desde).Hours()/24) + 1
	finAnterior := desde.AddDate(0, 0, -1)
	inicioAnterior := finAnterior.AddDate(0, 0, -(dias - 1))
	return repository.Rango{
		Desde: inicioAnterior.Format(clock.LayoutFecha),
		Hasta: finAnterior.Format(clock.LayoutFecha),
	}, true
}

func (s *reporteService) TopProductos(ctx context.Context, q dto.TopProductosQuery) ([]dto.ProductoVendidoResponse, error) {
	rango, err := validarRango(q.RangoQuery)
	if err != nil {
		return nil, err
	}
	if q.Limit < 1 || q.Limit > 100 {
		return nil, validacion("limit", "debe estar entre 1 y 100")
	}
	return s.topProductos(ctx, rango, q.Limit), nil
}

func (s *reporteService) topProductos(ctx context.Context, rango repository.Rango, limit int) []dto.ProductoVendidoResponse {
	rows, err := s.repo.TopProductos(ctx, rango, limit)
	if err != nil {
		log.Error().Err(err).Msg("reporte: top productos")
	}
	out := make([]dto.ProductoVendidoResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductoVendidoResponse{
			ProductoID: r.ProductoID.String(),
			Nombre:     r.Nombre,
			Cantidad:   r.Cantidad,
			Monto:      r.Monto,
		})
	}
	return out
}

// VentasPorHora always returns 24 buckets, hour 0 to 23 in the shop's zone.
func (s *reporteService) VentasPorHora(ctx context.Context, q dto.RangoQuery) ([]dto.VentaHoraResponse, error) {
	rango, err := validarRango(q)
	if err != nil {
		return nil, err
	}
	return s.porHora(ctx, rango), nil
}

func (s *reporteService) porHora(ctx context.Context, rango repository.Rango) []dto.VentaHoraResponse {
	out := make([]dto.VentaHoraResponse, 24)
	for h := range out {
		out[h] = dto.VentaHoraResponse{Hora: h, Monto: decimal.Zero}
	}
	ventas, err := s.repo.VentasParaHorario(ctx, rango)
	if err != nil {
		log.Error().Err(err).Msg("reporte: ventas por hora")
		return out
	}
	for _, v := range ventas {
		h := v.CreatedAt.In(clock.Zona).Hour()
		out[h].Cantidad++
		out[h].Monto = out[h].Monto.Add(v.Total)
	}
	return out
}

func (s *reporteService) DistribucionMetodosPago(ctx context.Context, q dto.RangoQuery) ([]dto.MetodoPagoResponse, error) {
	rango, err := validarRango(q)
	if err != nil {
		return nil, err
	}
	return s.metodosPago(ctx, rango), nil
}

func (s *reporteService) metodosPago(ctx context.Context, rango repository.Rango) []dto.MetodoPagoResponse {
	rows, err := s.repo.MetodosPago(ctx, rango)
	if err != nil {
		log.Error().Err(err).Msg("reporte: métodos de pago")
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Monto)
	}
	out := make([]dto.MetodoPagoResponse, 0, len(rows))
	for _, r := range rows {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = r.Monto.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out = append(out, dto.MetodoPagoResponse{
			MetodoPago: r.MetodoPago,
			Cantidad:   r.Cantidad,
			Monto:      r.Monto,
			Porcentaje: pct,
		})
	}
	return out
}

type movimiento struct {
	at  time.Time
	row dto.MovimientoResponse
}

// MovimientosDetallados lists a date's sales and abonos, newest first.
func (s *reporteService) MovimientosDetallados(ctx context.Context, fecha string) ([]dto.MovimientoResponse, error) {
	fecha, err := fechaOHoy(s.clock, fecha)
	if err != nil {
		return nil, err
	}
	dia := repository.Rango{Desde: fecha, Hasta: fecha}

	var movs []movimiento
	ventas, err := s.ventaRepo.ListByRango(ctx, dia)
	if err != nil {
		log.Error().Err(err).Str("fecha", fecha).Msg("reporte: movimientos (ventas)")
	}
	for i := range ventas {
		v := &ventas[i]
		movs = append(movs, movimiento{at: v.CreatedAt, row: dto.MovimientoResponse{
			ID:         v.ID.String(),
			Tipo:       "venta",
			Hora:       v.CreatedAt.In(clock.Zona).Format("15:04"),
			Cliente:    v.NombreCliente(),
			Productos:  describirItems(v.Items, "%s (%d)"),
			Total:      v.Total,
			MetodoPago: string(v.MetodoPago),
			EstadoPago: string(v.EstadoPago),
		}})
	}

	abonos, err := s.clienteRepo.ListAbonosPorFecha(ctx, fecha)
	if err != nil {
		log.Error().Err(err).Str("fecha", fecha).Msg("reporte: movimientos (abonos)")
	}
	for i := range abonos {
		a := &abonos[i]
		cliente := ""
		if a.Cliente != nil {
			cliente = a.Cliente.Nombre
		}
		movs = append(movs, movimiento{at: a.CreatedAt, row: dto.MovimientoResponse{
			ID:         a.ID.String(),
			Tipo:       "abono",
			Hora:       a.CreatedAt.In(clock.Zona).Format("15:04"),
			Cliente:    cliente,
			Productos:  productosAbono,
			Total:      a.Monto,
			MetodoPago: string(a.MetodoPago),
			EstadoPago: string(model.EstadoPagado),
		}})
	}

	slices.SortStableFunc(movs, func(a, b movimiento) int { return b.at.Compare(a.at) })
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, m.row)
	}
	return out, nil
}

func (s *reporteService) ProductosVendidos(ctx context.Context, q dto.RangoQuery) (int64, error) {
	rango, err := validarRango(q)
	if err != nil {
		return 0, err
	}
	return s.productosVendidos(ctx, rango), nil
}

func (s *reporteService) productosVendidos(ctx context.Context, rango repository.Rango) int64 {
	n, err := s.repo.TotalProductosVendidos(ctx, rango)
	if err != nil {
		log.Error().Err(err).Msg("reporte: productos vendidos")
		return 0
	}
	return n
}

// ReporteVentas returns one line per sale, newest first, capped at 100.
func (s *reporteService) ReporteVentas(ctx context.Context, q dto.RangoQuery) ([]dto.VentaReporteResponse, error) {
	rango, err := validarRango(q)
	if err != nil {
		return nil, err
	}
	return s.reporteVentas(ctx, rango), nil
}

func (s *reporteService) reporteVentas(ctx context.Context, rango repository.Rango) []dto.VentaReporteResponse {
	ventas, err := s.ventaRepo.ListByRango(ctx, rango)
	if err != nil {
		log.Error().Err(err).Msg("reporte: ventas")
	}
	if len(ventas) > limiteReporteVentas {
		ventas = ventas[:limiteReporteVentas]
	}
	out := make([]dto.VentaReporteResponse, 0, len(ventas))
	for i := range ventas {
		v := &ventas[i]
		unidades := 0
		for _, it := range v.Items {
			unidades += it.Cantidad
		}
		out = append(out, dto.VentaReporteResponse{
			ID:          v.ID.String(),
			Fecha:       v.Fecha,
			Hora:        v.CreatedAt.In(clock.Zona).Format("15:04"),
			TipoCliente: v.TipoCliente,
			MetodoPago:  string(v.MetodoPago),
			EstadoPago:  string(v.EstadoPago),
			Items:       unidades,
			Descripcion: describirItems(v.Items, "%s x%d"),
			Total:       v.Total,
		})
	}
	return out
}

func describirItems(items []model.VentaItem, formato string) string {
	partes := make([]string, 0, len(items))
	for _, it := range items {
		partes = append(partes, fmt.Sprintf(formato, it.NombreProducto, it.Cantidad))
	}
	return strings.Join(partes, ", ")
}

// Dashboard assembles every report for a range in one round trip.
func (s *reporteService) Dashboard(ctx context.Context, q dto.RangoQuery) (*dto.DashboardResponse, error) {
	rango, err := validarRango(q)
	if err != nil {
		return nil, err
	}
	anterior, hayAnterior := periodoAnterior(rango)

	var d dto.DashboardResponse
	d.PeriodoAnterior = dto.ResumenResponse{Total: decimal.Zero, TicketPromedio: decimal.Zero}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { d.Resumen = s.resumen(gctx, rango); return nil })
	g.Go(func() error { d.ProductosVendidos = s.productosVendidos(gctx, rango); return nil })
	if hayAnterior {
		g.Go(func() error { d.PeriodoAnterior = s.resumen(gctx, anterior); return nil })
		g.Go(func() error { d.ProductosVendidosAnterior = s.productosVendidos(gctx, anterior); return nil })
	}
	g.Go(func() error { d.TopProductos = s.topProductos(gctx, rango, 10); return nil })
	g.Go(func() error { d.PorHora = s.porHora(gctx, rango); return nil })
	g.Go(func() error { d.MetodosPago = s.metodosPago(gctx, rango); return nil })
	g.Go(func() error { d.Ventas = s.reporteVentas(gctx, rango); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	actual, prev := d.Resumen, d.PeriodoAnterior
	d.Variacion = dto.VariacionResponse{
		Total:             crecimiento(actual.Total, prev.Total),
		Cantidad:          crecimiento(decimal.NewFromInt(actual.Cantidad), decimal.NewFromInt(prev.Cantidad)),
		TicketPromedio:    crecimiento(actual.TicketPromedio, prev.TicketPromedio),
		TiposClienteUnico: crecimiento(decimal.NewFromInt(actual.TiposClienteUnico), decimal.NewFromInt(prev.TiposClienteUnico)),
		ProductosVendidos: crecimiento(decimal.NewFromInt(d.ProductosVendidos), decimal.NewFromInt(d.ProductosVendidosAnterior)),
	}
	return &d, nil
}

// crecimiento is the percent change from anterior to actual. From a zero base
// it is 0 when nothing happened either and 100 otherwise.
func crecimiento(actual, anterior decimal.Decimal) decimal.Decimal {
	if anterior.IsZero() {
		if actual.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return actual.Sub(anterior).Div(anterior).Mul(decimal.NewFromInt(100)).Round(2)
}

func (s *reporteService) Conteos(ctx context.Context) (map[string]int64, error) {
	c, err := s.repo.Conteos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reporte: conteos")
		return map[string]int64{}, nil
	}
	return c, nil
}

// ExportarExcel builds the report workbook: summary, sales, top products and payment methods.
func (s *reporteService) ExportarExcel(ctx context.Context, q dto.RangoQuery) ([]byte, error) {
	d, err := s.Dashboard(ctx, q)
	if err != nil {
		return nil, err
	}

	periodo := "Todas las fechas"
	if q.Desde != "" {
		periodo = q.Desde + " a " + q.Hasta
	}
	hojas := []infra.Hoja{
		{
			Nombre:      "Resumen",
			Encabezados: []string{"Indicador", "Valor"},
			Filas: [][]any{
				{"Período", periodo},
				{"Cantidad de ventas", d.Resumen.Cantidad},
				{"Total vendido", d.Resumen.Total.InexactFloat64()},
				{"Ticket promedio", d.Resumen.TicketPromedio.InexactFloat64()},
				{"Tipos de cliente", d.Resumen.TiposClienteUnico},
				{"Productos vendidos", d.ProductosVendidos},
			},
		},
		{
			Nombre:      "Ventas",
			Encabezados: []string{"Fecha", "Hora", "Cliente", "Método de pago", "Estado", "Unidades", "Detalle", "Total"},
		},
		{
			Nombre:      "Top Productos",
			Encabezados: []string{"Producto", "Unidades", "Monto"},
		},
		{
			Nombre:      "Métodos de Pago",
			Encabezados: []string{"Método", "Ventas", "Monto", "%"},
		},
	}
	for _, v := range d.Ventas {
		hojas[1].Filas = append(hojas[1].Filas, []any{
			v.Fecha, v.Hora, v.TipoCliente, v.MetodoPago, v.EstadoPago, v.Items, v.Descripcion, v.Total.InexactFloat64(),
		})
	}
	for _, p := range d.TopProductos {
		hojas[2].Filas = append(hojas[2].Filas, []any{p.Nombre, p.Cantidad, p.Monto.InexactFloat64()})
	}
	for _, m := range d.MetodosPago {
		hojas[3].Filas = append(hojas[3].Filas, []any{m.MetodoPago, m.Cantidad, m.Monto.InexactFloat64(), m.Porcentaje.InexactFloat64()})
	}

	data, err := infra.GenerarLibro(hojas)
	if err != nil {
		log.Error().Err(err).Msg("reporte: exportar excel")
		return nil, fmt.Errorf("exportar reporte: %w", err)
	}
	return data, nil
}
