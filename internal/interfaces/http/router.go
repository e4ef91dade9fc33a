package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/commodities-api/internal/application/analytics"
	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/infrastructure/observability"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name           string
	AllowedOrigins []string
	BodyLimit      int // bytes; 0 = 1 MiB
}

// NewApp crea la app Fiber con el ErrorHandler central y la cadena de middlewares globales:
// recover -> request id -> CORS -> log -> métricas -> trazas.
func NewApp(cfg AppConfig, log *logger.Logger, prom *observability.Prom) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    bodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-Id",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: len(cfg.AllowedOrigins) > 0 && !containsWildcard(cfg.AllowedOrigins),
	}))
	app.Use(RequestLogger(log.Named("http")))
	app.Use(Metrics(prom))
	app.Use(Tracing())
	return app
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Guard       *auth.Guard
	ProductUC   *usecase.ProductUseCase
	ImageUC     *usecase.ImageUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Store       Pinger
	Prom        *observability.Prom
	// Gatherer expone /metrics; nil = sin endpoint de métricas.
	Gatherer prometheus.Gatherer
	// GraphQL handler de POST /graphql; nil = sin GraphQL.
	GraphQL fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Store != nil {
		app.Get("/health", Health(deps.Store))
	}
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if deps.GraphQL != nil {
		// El control de acceso de GraphQL se aplica por operación dentro del handler.
		app.Post("/graphql", deps.GraphQL)
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Prom)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	authn := AuthMiddleware(deps.Guard)
	managerOnly := RequireRole(entity.RoleManager)

	api.Get("/auth/me", authn, authHandler.Me)

	// Products: lectura y escritura para cualquier rol; borrado solo MANAGER
	productHandler := NewProductHandler(deps.ProductUC, deps.ImageUC)
	products := api.Group("/products", authn)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", managerOnly, productHandler.Delete)
	products.Post("/:id/image-upload", productHandler.RequestImageUpload)

	// Dashboard (solo MANAGER)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := api.Group("/dashboard", authn, managerOnly)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/report.pdf", dashboardHandler.GetReport)
}
