package router

import (
	"strings"
	"time"

	"kioscopos/internal/clock"
	"kioscopos/internal/config"
	"kioscopos/internal/handler"
	"kioscopos/internal/infra"
	"kioscopos/internal/middleware"
	"kioscopos/internal/repository"
	"kioscopos/internal/service"
	"kioscopos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators built in main. Redis, the mailer
// and the dispatcher may be nil.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Mailer     *infra.Mailer
	Locker     service.Locker
	Dispatcher *worker.Dispatcher
	Clock      clock.Clock
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Clock == nil {
		deps.Clock = clock.Sistema()
	}
	if deps.Locker == nil {
		deps.Locker = infra.NewLocalLocker()
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(origenes(cfg.CORSOrigins)))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())
	if cfg.RateLimitRPM > 0 {
		r.Use(middleware.RateLimiter(cfg.RateLimitRPM, time.Minute))
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	db := deps.DB
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(service.Credenciales{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		JWTSecret:    cfg.JWTSecret,
		Expiracion:   time.Duration(cfg.JWTExpirationHours) * time.Hour,
	})
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	clienteSvc := service.NewClienteService(clienteRepo, deps.Clock)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, deps.Locker, deps.Dispatcher, deps.Clock)
	reporteSvc := service.NewReporteService(reporteRepo, ventaRepo, clienteRepo, deps.Clock)
	cajaSvc := service.NewCajaService(service.CajaDeps{
		Cajas:      cajaRepo,
		Ventas:     ventaRepo,
		Clientes:   clienteRepo,
		Productos:  productoRepo,
		Reportes:   reporteRepo,
		Locker:     deps.Locker,
		Dispatcher: deps.Dispatcher,
		Clock:      deps.Clock,
		Comercio:   cfg.ShopName,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(handler.HealthDeps{DB: db, Redis: deps.Redis, Mailer: deps.Mailer}))
	r.GET("/metrics", gin.WrapH(infra.MetricsHandler()))

	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		prods := v1.Group("/productos")
		{
			prods.POST("", productosH.Crear)
			prods.GET("", productosH.Listar)
			prods.GET("/codigo/:codigo", productosH.ObtenerPorCodigo)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.PATCH("/:id/stock", productosH.ActualizarStock)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		v1.GET("/inventario/metricas", inventarioH.Metricas)

		cats := v1.Group("/categorias")
		{
			cats.POST("", categoriasH.Crear)
			cats.GET("", categoriasH.Listar)
			cats.DELETE("/:id", categoriasH.Eliminar)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.POST("/:id/abonos", clientesH.RegistrarAbono)
			clientes.GET("/:id/abonos", clientesH.ListarAbonos)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.RegistrarVenta)
			ventas.GET("", ventasH.ListarVentas)
			ventas.GET("/:id", ventasH.ObtenerVenta)
		}

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/estado", cajaH.Estado)
			caja.GET("/ingresos", cajaH.Ingresos)
			caja.GET("/historial", cajaH.Historial)
		}

		rep := v1.Group("/reportes")
		{
			rep.GET("/resumen", reportesH.Resumen)
			rep.GET("/periodo-anterior", reportesH.PeriodoAnterior)
			rep.GET("/top-productos", reportesH.TopProductos)
			rep.GET("/por-hora", reportesH.PorHora)
			rep.GET("/metodos-pago", reportesH.MetodosPago)
			rep.GET("/ventas", reportesH.Ventas)
			rep.GET("/productos-vendidos", reportesH.ProductosVendidos)
			rep.GET("/movimientos", reportesH.Movimientos)
			rep.GET("/dashboard", reportesH.Dashboard)
			rep.GET("/conteos", reportesH.Conteos)
			rep.GET("/exportar", reportesH.Exportar)
		}
	}

	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

func origenes(csv string) []string {
	var out []string
	for _, o := range strings.Split(csv, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
