package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/commodities-api/docs"
	appanalytics "github.com/jhoicas/commodities-api/internal/application/analytics"
	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/ports"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/commodities-api/internal/infrastructure/pdf"
	"github.com/jhoicas/commodities-api/internal/infrastructure/security"
	"github.com/jhoicas/commodities-api/internal/infrastructure/storage"
	"github.com/jhoicas/commodities-api/internal/infrastructure/store"
	gql "github.com/jhoicas/commodities-api/internal/interfaces/graphql"
	httpRouter "github.com/jhoicas/commodities-api/internal/interfaces/http"
	"github.com/jhoicas/commodities-api/pkg/config"
	"github.com/jhoicas/commodities-api/pkg/jwt"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

// @title                       Commodities Inventory API
// @version                     1.0
// @description                 Inventario de commodities: autenticación, productos y dashboard.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.App.Name, cfg.Observability.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	var (
		prom     *observability.Prom
		gatherer prometheus.Gatherer
	)
	if cfg.Observability.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		prom = observability.NewProm(reg)
		gatherer = reg
	}

	st, err := store.Open(ctx, cfg.DB, prom)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	// Imágenes de producto: opcional, solo con S3_BUCKET configurado.
	var images ports.ImageStorage
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("configurar almacenamiento S3")
		}
		images = s3Storage
	} else {
		log.Warn().Msg("S3_BUCKET vacío: subida de imágenes deshabilitada")
	}

	tokens := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	guard := auth.NewGuard(tokens)
	authUC := auth.NewAuthUseCase(st.Users, security.NewBcryptHasher(cfg.App.BcryptCost), tokens)
	productUC := usecase.NewProductUseCase(st.Products)
	imageUC := usecase.NewImageUseCase(st.Products, images)
	dashboardUC := appanalytics.NewDashboardUseCase(st.Products, infrapdf.NewMarotoReportGenerator())

	schema, err := gql.NewSchema(gql.NewResolver(gql.Deps{
		AuthUC:      authUC,
		Guard:       guard,
		ProductUC:   productUC,
		ImageUC:     imageUC,
		DashboardUC: dashboardUC,
		Log:         log,
		Prom:        prom,
	}), gql.SchemaOptions{Introspection: cfg.App.IsDevelopment()})
	if err != nil {
		log.Fatal().Err(err).Msg("esquema GraphQL")
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, log, prom)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Commodities API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Guard:       guard,
		ProductUC:   productUC,
		ImageUC:     imageUC,
		DashboardUC: dashboardUC,
		Store:       st,
		Prom:        prom,
		Gatherer:    gatherer,
		GraphQL:     gql.Handler(schema),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("GraphQL en /graphql, REST en /api")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
