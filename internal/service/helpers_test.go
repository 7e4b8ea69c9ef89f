package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"kioscopos/internal/clock"
	"kioscopos/internal/dto"
	"kioscopos/internal/infra"
	"kioscopos/internal/repository"
	"kioscopos/internal/service"
	"kioscopos/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// reloj is a test clock that only moves when told to.
type reloj struct {
	mu sync.Mutex
	t  time.Time
}

func (r *reloj) Now() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t.In(clock.Zona)
}

func (r *reloj) Fijar(t time.Time) {
	r.mu.Lock()
	r.t = t
	r.mu.Unlock()
}

func (r *reloj) Avanzar(d time.Duration) {
	r.mu.Lock()
	r.t = r.t.Add(d)
	r.mu.Unlock()
}

func enZona(fecha string, h, m int) time.Time {
	d, err := clock.ParseFecha(fecha)
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type entorno struct {
	db         *gorm.DB
	reloj      *reloj
	categorias service.CategoriaService
	productos  service.ProductoService
	clientes   service.ClienteService
	ventas     service.VentaService
	caja       service.CajaService
	reportes   service.ReporteService
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	db := testutil.NuevaDB(t)
	r := &reloj{t: enZona("2024-01-01", 10, 0)}

	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)
	locker := infra.NewLocalLocker()

	return &entorno{
		db:         db,
		reloj:      r,
		categorias: service.NewCategoriaService(categoriaRepo),
		productos:  service.NewProductoService(productoRepo, categoriaRepo),
		clientes:   service.NewClienteService(clienteRepo, r),
		ventas:     service.NewVentaService(ventaRepo, productoRepo, clienteRepo, locker, nil, r),
		caja: service.NewCajaService(service.CajaDeps{
			Cajas:     cajaRepo,
			Ventas:    ventaRepo,
			Clientes:  clienteRepo,
			Productos: productoRepo,
			Reportes:  reporteRepo,
			Locker:    locker,
			Clock:     r,
			Comercio:  "Kiosco Test",
		}),
		reportes: service.NewReporteService(reporteRepo, ventaRepo, clienteRepo, r),
	}
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (e *entorno) producto(t *testing.T, codigo, nombre, costo, venta string, stock int) *dto.ProductoResponse {
	t.Helper()
	req := dto.CrearProductoRequest{
		Nombre:      nombre,
		PrecioCosto: dec(costo),
		PrecioVenta: dec(venta),
		StockActual: ptr(stock),
	}
	if codigo != "" {
		req.Codigo = ptr(codigo)
	}
	p, err := e.productos.Crear(context.Background(), req)
	require.NoError(t, err)
	return p
}

func (e *entorno) cliente(t *testing.T, nombre string) *dto.ClienteResponse {
	t.Helper()
	c, err := e.clientes.Crear(context.Background(), dto.CrearClienteRequest{Nombre: nombre})
	require.NoError(t, err)
	return c
}

func linea(p *dto.ProductoResponse, cantidad int) dto.ItemVentaRequest {
	return dto.ItemVentaRequest{
		ProductoID:     ptr(p.ID),
		Nombre:         p.Nombre,
		Cantidad:       cantidad,
		PrecioUnitario: p.PrecioVenta,
	}
}

func (e *entorno) vender(t *testing.T, metodo string, clienteID *string, items ...dto.ItemVentaRequest) *dto.VentaResponse {
	t.Helper()
	v, err := e.ventas.RegistrarVenta(context.Background(), dto.RegistrarVentaRequest{
		ClienteID:  clienteID,
		MetodoPago: metodo,
		Items:      items,
	})
	require.NoError(t, err)
	return v
}
