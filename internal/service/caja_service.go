package service

import (
	"context"

	"kioscopos/internal/clock"
	"kioscopos/internal/dto"
	"kioscopos/internal/infra"
	"kioscopos/internal/model"
	"kioscopos/internal/repository"
	"kioscopos/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService governs the daily register lifecycle.
//
// A date may run several open/close cycles. Each AperturaCaja/CierreCaja pair
// shares (fecha, ciclo) and the highest ciclo is the active one, so a closed
// day can be reopened without breaking the one-record-per-cycle uniqueness.
type CajaService interface {
	Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.AperturaResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreResponse, error)
	Estado(ctx context.Context, fecha string) (*dto.EstadoCajaResponse, error)
	IngresosDelDia(ctx context.Context, fecha string) (*dto.IngresosResponse, error)
	Historial(ctx context.Context, q dto.RangoQuery) (*dto.HistorialCajaResponse, error)
}

type CajaDeps struct {
	Cajas      repository.CajaRepository
	Ventas     repository.VentaRepository
	Clientes   repository.ClienteRepository
	Productos  repository.ProductoRepository
	Reportes   repository.ReporteRepository
	Locker     Locker
	Dispatcher *worker.Dispatcher
	Clock      clock.Clock
	Comercio   string
}

type cajaService struct {
	CajaDeps
}

func NewCajaService(deps CajaDeps) CajaService {
	if deps.Comercio == "" {
		deps.Comercio = "Kiosco"
	}
	return &cajaService{CajaDeps: deps}
}

// Abrir opens the register for a date. It fails with ErrCajaYaAbierta while the
// latest cycle is still open; after any close it starts the cycle above the
// highest one recorded for the date.
func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.AperturaResponse, error) {
	fecha, err := fechaOHoy(s.Clock, req.Fecha)
	if err != nil {
		return nil, err
	}
	if req.MontoInicial.IsNegative() {
		return nil, validacion("monto_inicial", "no puede ser negativo")
	}

	unlock, err := lockCaja(ctx, s.Locker, fecha)
	if err != nil {
		return nil, err
	}
	defer unlock()

	apertura := &model.AperturaCaja{
		Fecha:        fecha,
		Ciclo:        1,
		MontoInicial: req.MontoInicial.Round(2),
		Notas:        trimOpcional(req.Notas),
		CreatedAt:    s.Clock.Now(),
	}
	err = runTx(ctx, s.Cajas.DB(), func(tx *gorm.DB) error {
		ultima, err := s.Cajas.UltimaAperturaTx(tx, fecha)
		if err != nil {
			return err
		}
		if ultima != nil {
			cierre, err := s.Cajas.CierreDeCicloTx(tx, fecha, ultima.Ciclo)
			if err != nil {
				return err
			}
			if cierre == nil {
				return conflicto(ErrCajaYaAbierta, fecha)
			}
			apertura.Ciclo = ultima.Ciclo + 1
		}
		// A close without an opening still consumes its cycle.
		cerrado, err := s.Cajas.UltimoCierreTx(tx, fecha)
		if err != nil {
			return err
		}
		if cerrado != nil && cerrado.Ciclo >= apertura.Ciclo {
			apertura.Ciclo = cerrado.Ciclo + 1
		}
		if err := s.Cajas.CreateAperturaTx(tx, apertura); err != nil {
			if esViolacionUnica(err) {
				return conflicto(ErrFechaDuplicada, fecha)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, persistencia("abrir caja", err)
	}

	log.Info().Str("fecha", fecha).Int("ciclo", apertura.Ciclo).
		Str("monto_inicial", apertura.MontoInicial.StringFixed(2)).Msg("caja abierta")
	return aperturaToResponse(apertura), nil
}

// Cerrar closes the latest cycle of a date (cycle 1 when the day was never opened).
// TotalIngresos is computed inside the same transaction that inserts the close.
func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreResponse, error) {
	fecha, err := fechaOHoy(s.Clock, req.Fecha)
	if err != nil {
		return nil, err
	}

	unlock, err := lockCaja(ctx, s.Locker, fecha)
	if err != nil {
		return nil, err
	}
	defer unlock()

	datos := s.datosInforme(ctx, fecha)
	notas := ""
	if n := trimOpcional(req.Notas); n != nil {
		notas = *n
	}
	datos.Notas = notas

	cierre := &model.CierreCaja{Fecha: fecha, Ciclo: 1, CreatedAt: s.Clock.Now()}
	err = runTx(ctx, s.Cajas.DB(), func(tx *gorm.DB) error {
		ultima, err := s.Cajas.UltimaAperturaTx(tx, fecha)
		if err != nil {
			return err
		}
		if ultima != nil {
			cierre.Ciclo = ultima.Ciclo
		}
		existente, err := s.Cajas.CierreDeCicloTx(tx, fecha, cierre.Ciclo)
		if err != nil {
			return err
		}
		if existente != nil {
			return conflicto(ErrCierreDuplicado, fecha)
		}

		ventas, abonos, err := s.ingresosTx(tx, fecha)
		if err != nil {
			return err
		}
		cierre.TotalIngresos = ventas.Add(abonos)

		datos.Ciclo = cierre.Ciclo
		datos.TotalIngresos = cierre.TotalIngresos
		informe := informeCierre(datos)
		cierre.Notas = &informe

		if err := s.Cajas.CreateCierreTx(tx, cierre); err != nil {
			if esViolacionUnica(err) {
				return conflicto(ErrCierreDuplicado, fecha)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, persistencia("cerrar caja", err)
	}

	infra.CierresCaja.Inc()
	log.Info().Str("fecha", fecha).Int("ciclo", cierre.Ciclo).
		Str("total_ingresos", cierre.TotalIngresos.StringFixed(2)).Msg("caja cerrada")

	job := worker.CierreJobPayload{Fecha: fecha, Ciclo: cierre.Ciclo, Reporte: *cierre.Notas}
	if err := s.Dispatcher.EnqueueCierre(ctx, job); err != nil {
		log.Error().Err(err).Str("fecha", fecha).Msg("failed to enqueue cierre job")
	}
	if err := s.Dispatcher.EnqueueBackup(ctx, worker.BackupJobPayload{Motivo: "cierre " + fecha}); err != nil {
		log.Error().Err(err).Msg("failed to enqueue backup job")
	}
	return cierreToResponse(cierre), nil
}

// datosInforme gathers the archival report figures. Failures only blank the
// affected section; they never block the close.
func (s *cajaService) datosInforme(ctx context.Context, fecha string) datosCierre {
	rango := repository.Rango{Desde: fecha, Hasta: fecha}
	d := datosCierre{Comercio: s.Comercio, Fecha: fecha, Emitido: s.Clock.Now()}
	var err error
	if d.Resumen, err = s.Reportes.Resumen(ctx, rango); err != nil {
		log.Warn().Err(err).Msg("informe cierre: resumen")
	}
	if d.ProductosVendidos, err = s.Reportes.TotalProductosVendidos(ctx, rango); err != nil {
		log.Warn().Err(err).Msg("informe cierre: productos vendidos")
	}
	if d.Top, err = s.Reportes.TopProductos(ctx, rango, 5); err != nil {
		log.Warn().Err(err).Msg("informe cierre: top productos")
	}
	if d.Inventario, err = s.Productos.Metricas(ctx); err != nil {
		log.Warn().Err(err).Msg("informe cierre: inventario")
	}
	return d
}

// Estado classifies a date as no_abierta, abierta or cerrada by its latest cycle.
func (s *cajaService) Estado(ctx context.Context, fecha string) (*dto.EstadoCajaResponse, error) {
	fecha, err := fechaOHoy(s.Clock, fecha)
	if err != nil {
		return nil, err
	}
	resp := &dto.EstadoCajaResponse{Fecha: fecha, Estado: string(model.CajaNoAbierta)}

	ultima, err := s.Cajas.UltimaApertura(ctx, fecha)
	if err != nil {
		return nil, persistencia("estado de caja", err)
	}
	if ultima == nil {
		return resp, nil
	}
	monto := ultima.MontoInicial
	resp.Ciclo = ultima.Ciclo
	resp.MontoInicial = &monto
	resp.Estado = string(model.CajaAbierta)

	cierre, err := s.Cajas.CierreDeCiclo(ctx, fecha, ultima.Ciclo)
	if err != nil {
		return nil, persistencia("estado de caja", err)
	}
	if cierre != nil {
		total := cierre.TotalIngresos
		resp.TotalIngresos = &total
		resp.Estado = string(model.CajaCerrada)
	}
	return resp, nil
}

// IngresosDelDia recomputes a date's cash income: settled sales plus abonos.
// On-account sales are receivables and never count.
func (s *cajaService) IngresosDelDia(ctx context.Context, fecha string) (*dto.IngresosResponse, error) {
	fecha, err := fechaOHoy(s.Clock, fecha)
	if err != nil {
		return nil, err
	}
	var ventas, abonos decimal.Decimal
	err = runTx(ctx, s.Cajas.DB(), func(tx *gorm.DB) error {
		ventas, abonos, err = s.ingresosTx(tx, fecha)
		return err
	})
	if err != nil {
		return nil, persistencia("ingresos del día", err)
	}
	return &dto.IngresosResponse{
		Fecha:         fecha,
		VentasPagadas: ventas,
		Abonos:        abonos,
		Total:         ventas.Add(abonos),
	}, nil
}

func (s *cajaService) ingresosTx(tx *gorm.DB, fecha string) (ventas, abonos decimal.Decimal, err error) {
	if ventas, err = s.Ventas.SumPagadasTx(tx, fecha); err != nil {
		return
	}
	abonos, err = s.Clientes.SumAbonosTx(tx, fecha)
	return
}

func (s *cajaService) Historial(ctx context.Context, q dto.RangoQuery) (*dto.HistorialCajaResponse, error) {
	rango, err := validarRango(q)
	if err != nil {
		return nil, err
	}
	aperturas, err := s.Cajas.ListAperturas(ctx, rango)
	if err != nil {
		return nil, persistencia("historial de caja", err)
	}
	cierres, err := s.Cajas.ListCierres(ctx, rango)
	if err != nil {
		return nil, persistencia("historial de caja", err)
	}
	resp := &dto.HistorialCajaResponse{
		Aperturas: make([]dto.AperturaResponse, 0, len(aperturas)),
		Cierres:   make([]dto.CierreResponse, 0, len(cierres)),
	}
	for i := range aperturas {
		resp.Aperturas = append(resp.Aperturas, *aperturaToResponse(&aperturas[i]))
	}
	for i := range cierres {
		resp.Cierres = append(resp.Cierres, *cierreToResponse(&cierres[i]))
	}
	return resp, nil
}

// validarRango accepts both dates or neither, with desde <= hasta.
func validarRango(q dto.RangoQuery) (repository.Rango, error) {
	if (q.Desde == "") != (q.Hasta == "") {
		return repository.Rango{}, validacion("rango", "indicar ambas fechas (desde y hasta) o ninguna")
	}
	if q.Desde == "" {
		return repository.Rango{}, nil
	}
	desde, err := clock.ParseFecha(q.Desde)
	if err != nil {
		return repository.Rango{}, validacion("desde", "%s", err.Error())
	}
	hasta, err := clock.ParseFecha(q.Hasta)
	if err != nil {
		return repository.Rango{}, validacion("hasta", "%s", err.Error())
	}
	if hasta.Before(desde) {
		return repository.Rango{}, validacion("rango", "desde (%s) es posterior a hasta (%s)", q.Desde, q.Hasta)
	}
	return repository.Rango{Desde: q.Desde, Hasta: q.Hasta}, nil
}

func aperturaToResponse(a *model.AperturaCaja) *dto.AperturaResponse {
	return &dto.AperturaResponse{
		ID:           a.ID.String(),
		Fecha:        a.Fecha,
		Ciclo:        a.Ciclo,
		MontoInicial: a.MontoInicial,
		Notas:        a.Notas,
		CreatedAt:    hora(a.CreatedAt),
	}
}

func cierreToResponse(c *model.CierreCaja) *dto.CierreResponse {
	return &dto.CierreResponse{
		ID:            c.ID.String(),
		Fecha:         c.Fecha,
		Ciclo:         c.Ciclo,
		TotalIngresos: c.TotalIngresos,
		Notas:         c.Notas,
		CreatedAt:     hora(c.CreatedAt),
	}
}
