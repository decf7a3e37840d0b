package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/config"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/handler"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/middleware"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	socioRepo := repository.NewSocioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	dispensacionRepo := repository.NewDispensacionRepository(db)
	monederoRepo := repository.NewMonederoRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	documentoRepo := repository.NewDocumentoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	socioSvc := service.NewSocioService(socioRepo)
	productoSvc := service.NewProductoService(productoRepo, movimientoStockRepo)
	cajaSvc := service.NewCajaService(cajaRepo)
	monederoSvc := service.NewMonederoService(monederoRepo, socioRepo, cajaRepo)
	dispensarioSvc := service.NewDispensarioService(dispensacionRepo, socioRepo, productoRepo, cajaRepo, movimientoStockRepo, monederoSvc, cfg)
	documentoSvc := service.NewDocumentoService(documentoRepo, socioRepo, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	sociosH := handler.NewSocioHandler(socioSvc)
	productosH := handler.NewProductoHandler(productoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	dispensarioH := handler.NewDispensarioHandler(dispensarioSvc)
	monederoH := handler.NewMonederoHandler(monederoSvc)
	documentosH := handler.NewDocumentoHandler(documentoSvc)
	healthH := handler.NewHealthHandler(db, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. Roles: dispensador, administrador.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("dispensador", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		socios := v1.Group("/socios")
		{
			socios.POST("", todos, sociosH.Crear)
			socios.GET("", todos, sociosH.List)
			socios.GET("/rfid/:rfid", todos, sociosH.ObtenerPorRFID)
			socios.GET("/:id", todos, sociosH.Obtener)
			socios.PUT("/:id", todos, sociosH.Actualizar)
			socios.DELETE("/:id", admin, sociosH.Eliminar)

			// Monedero del socio
			socios.GET("/:id/monedero", todos, monederoH.Saldo)
			socios.POST("/:id/monedero/recargar", todos, monederoH.Recargar)
			socios.GET("/:id/monedero/movimientos", todos, monederoH.Movimientos)

			// Documentos del socio
			socios.POST("/:id/documentos", todos, documentosH.Subir)
			socios.GET("/:id/documentos", todos, documentosH.Listar)
		}

		v1.GET("/documentos/:docId", todos, documentosH.Descargar)
		v1.DELETE("/documentos/:docId", admin, documentosH.Eliminar)

		v1.GET("/productos", todos, productosH.List)
		v1.GET("/productos/movimientos-stock", admin, productosH.MovimientosStock)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.POST("/:id/stock", productosH.AjustarStock)
			prods.POST("/:id/ocultar", productosH.Ocultar)
			prods.POST("/:id/mostrar", productosH.Mostrar)
		}

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", todos, cajaH.Abrir)
			caja.POST("/cerrar", todos, cajaH.Cerrar)
			caja.GET("/abierta", todos, cajaH.SesionAbierta)
			caja.POST("/movimientos", todos, cajaH.RegistrarMovimiento)
			caja.GET("", admin, cajaH.ListSesiones)
			caja.GET("/:id", todos, cajaH.ObtenerSesion)
			caja.GET("/:id/movimientos", todos, cajaH.Movimientos)
		}

		disp := v1.Group("/dispensario")
		{
			disp.POST("/sugerencia", todos, dispensarioH.Sugerencia)
			disp.POST("/dispensar", todos, dispensarioH.Dispensar)
			disp.GET("", todos, dispensarioH.List)
			disp.GET("/:id", todos, dispensarioH.Obtener)
			disp.DELETE("/:id", admin, dispensarioH.Anular)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.POST("/:id/reactivar", authH.ReactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
