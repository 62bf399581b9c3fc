// @title                      Fletes API
// @version                    1.0
// @description                Fletes, facturas, cobranza con detracción y reportes.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
// @description                Token JWT con el prefijo "Bearer ".

//go:generate swag init --dir ../../ --generalInfo cmd/api/main.go --output ../../docs --outputTypes go,json --overridesFile ../../.swaggo
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/fletes-api/docs"
	appanalytics "github.com/jhoicas/fletes-api/internal/application/analytics"
	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/application/fletes"
	"github.com/jhoicas/fletes-api/internal/application/sequence"
	"github.com/jhoicas/fletes-api/internal/domain/detraccion"
	infraexcel "github.com/jhoicas/fletes-api/internal/infrastructure/excel"
	"github.com/jhoicas/fletes-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/fletes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fletes-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/fletes-api/internal/interfaces/http"
	"github.com/jhoicas/fletes-api/pkg/config"
	"github.com/jhoicas/fletes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}()
	db := client.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("índices de MongoDB")
	}

	fleteRepo := mongodb.NewFleteRepository(db)
	facturaRepo := mongodb.NewFacturaRepository(db)
	gestionRepo := mongodb.NewGestionRepository(db)
	servicioRepo := mongodb.NewServicioRepository(db)
	analyticsRepo := mongodb.NewAnalyticsRepository(db)
	txRunner := mongodb.NewTxRunner(client, cfg.Mongo.Transactions)
	codes := sequence.NewGenerator(mongodb.NewSequenceRepository(db))

	exporter := infraexcel.NewExporter()
	politica := detraccion.Politica{Umbral: cfg.Billing.DetraccionUmbral, Tasa: cfg.Billing.DetraccionTasa}
	snapshots := billing.NewSnapshotBuilder(fleteRepo, servicioRepo)

	fleteUC := fletes.NewFleteUseCase(fleteRepo, servicioRepo, codes)
	servicioUC := fletes.NewServicioUseCase(servicioRepo, fleteRepo, fleteUC)
	gestionUC := billing.NewGestionUseCase(gestionRepo, facturaRepo, fleteRepo, txRunner, codes, snapshots, exporter, politica)
	facturaUC := billing.NewFacturaUseCase(facturaRepo, fleteRepo, gestionRepo, txRunner, codes, snapshots, gestionUC, exporter, billing.Config{
		DiasVencimiento: cfg.Billing.DiasVencimiento,
		MonedaDefault:   cfg.Billing.MonedaDefault,
		Detraccion:      politica,
	})

	// PDF: representación impresa a partir del snapshot de emisión
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Emisor{
		RazonSocial: cfg.Billing.EmisorNombre,
		RUC:         cfg.Billing.EmisorRUC,
	})
	facturaPDFUC := billing.NewPDFUseCase(facturaRepo, gestionRepo, snapshots, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// Barrido de vencidos; con REDIS_URL solo una réplica lo ejecuta por intervalo.
	if cfg.Scheduler.OverdueInterval > 0 {
		var locker scheduler.Locker
		if cfg.Redis.URL != "" {
			rdb, err := scheduler.NewRedisClient(ctx, cfg.Redis.URL)
			if err != nil {
				log.Fatal().Err(err).Msg("conexión a Redis")
			}
			defer rdb.Close()
			locker = scheduler.NewRedisLocker(rdb)
		}
		sweeper := scheduler.NewOverdueSweeper(gestionUC, locker, cfg.Scheduler.OverdueInterval)
		go sweeper.Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs (docs/ se regenera con go generate ./cmd/api)
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fletes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FleteUC:     fleteUC,
		ServicioUC:  servicioUC,
		FacturaUC:   facturaUC,
		GestionUC:   gestionUC,
		FacturaPDF:  facturaPDFUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
