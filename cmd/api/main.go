package main

//go:generate swag init -g main.go -d ./,../../internal -o ../../docs --outputTypes go

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	activityHttp "activity-dashboard-service/internal/activity/adapters/http/fiber"
	"activity-dashboard-service/internal/activity/adapters/csvremote"
	"activity-dashboard-service/internal/activity/adapters/sqlstore"
	activityPorts "activity-dashboard-service/internal/activity/core/ports"
	activityUsecase "activity-dashboard-service/internal/activity/core/usecase"
	"activity-dashboard-service/internal/config"

	"activity-dashboard-service/internal/metrics/adapters/chart"
	metricsHttp "activity-dashboard-service/internal/metrics/adapters/http/fiber"
	metricsUsecase "activity-dashboard-service/internal/metrics/core/usecase"

	"activity-dashboard-service/internal/platform/logger"

	reportsHttp "activity-dashboard-service/internal/reports/adapters/http/fiber"
	"activity-dashboard-service/internal/reports/adapters/pdf"
	"activity-dashboard-service/internal/reports/adapters/xlsx"
	reportsUsecase "activity-dashboard-service/internal/reports/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "activity-dashboard-service/docs"
)

// @title Activity Dashboard API
// @version 1.0
// @description Filters, aggregates and exports the user activity table.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.NewLogger(cfg.AppEnv)

	// Activity source
	source, closeSource, err := newSource(cfg, lg)
	if err != nil {
		lg.Fatal().Err(err).Str("source_kind", cfg.SourceKind).Msg("failed to set up activity source")
	}
	defer closeSource()

	// Usecases
	loadUC := activityUsecase.NewLoadActivityUseCase(source, cfg.CacheTTL, lg)
	filterUC := activityUsecase.NewFilterActivityUseCase(loadUC)
	getMetricsUC := metricsUsecase.NewGetMetricsUseCase(filterUC)
	dashboardUC := metricsUsecase.NewGetDashboardUseCase(filterUC, nil, cfg.KPIs)
	exportUC := reportsUsecase.NewExportUseCase(
		filterUC,
		xlsx.NewEncoder(),
		pdf.NewEncoder(),
		reportsUsecase.ExportConfig{DatasetName: cfg.DatasetName, Title: cfg.ReportTitle, KPIs: cfg.KPIs},
		lg,
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               "activity-dashboard-service",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.Middleware(lg))

	// activity endpoints
	activityHandler := activityHttp.NewActivityHandler(filterUC, loadUC)
	app.Get("/filters", activityHandler.GetFilters)
	app.Post("/activity/cache/invalidate", activityHandler.InvalidateCache)

	// metrics endpoints
	metricsHandler := metricsHttp.NewMetricsHandler(getMetricsUC, dashboardUC, chart.NewRenderer())
	app.Get("/dashboard", metricsHandler.GetDashboard)
	app.Get("/metrics", metricsHandler.GetMetrics)
	app.Get("/charts/:name", metricsHandler.GetChart)
	app.Get("/geo", metricsHandler.GetGeo)

	// report endpoints
	reportHandler := reportsHttp.NewReportHandler(exportUC)
	app.Get("/exports/table.xlsx", reportHandler.ExportTable)
	app.Get("/exports/summary.pdf", reportHandler.ExportSummary)

	// ops
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/internal/prometheus", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error().Err(err).Msg("fiber stopped")
		}
	}()

	lg.Info().
		Str("port", cfg.Port).
		Str("source", source.Name()).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	lg.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		lg.Error().Err(err).Msg("fiber shutdown error")
	}

	lg.Info().Msg("server exiting")
}

// newSource builds the configured activity source. The returned func
// releases whatever the source holds open.
func newSource(cfg *config.Config, lg zerolog.Logger) (activityPorts.ActivitySourcePort, func(), error) {
	switch cfg.SourceKind {
	case config.SourceCSV:
		src := csvremote.NewSource(
			&http.Client{Timeout: cfg.CSVTimeout},
			csvremote.Config{
				URL:            cfg.CSVURL,
				Name:           cfg.DatasetName,
				SyntheticStart: cfg.CSVSyntheticStart,
				SyntheticDays:  cfg.CSVSyntheticDays,
				SyntheticUsers: cfg.CSVSyntheticUsers,
			},
			cfg.Mapping,
		)
		return src, func() {}, nil

	default:
		dsn := cfg.DBDSN
		if dsn == "" {
			var err error
			dsn, err = sqlstore.BuildDSN(cfg.DBDriver, sqlstore.ConnParams{
				Host:     cfg.DBHost,
				Port:     cfg.DBPort,
				User:     cfg.DBUser,
				Password: cfg.DBPassword,
				Database: cfg.DBName,
				SSLMode:  cfg.DBSSLMode,
			})
			if err != nil {
				return nil, nil, err
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := sqlstore.Open(ctx, cfg.DBDriver, dsn)
		if err != nil {
			return nil, nil, err
		}

		repo, err := sqlstore.NewActivityRepository(sqlstore.NewSQLDB(db), cfg.DBDriver, cfg.ActivityTable, cfg.Mapping)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		lg.Debug().Str("driver", cfg.DBDriver).Str("table", cfg.ActivityTable).Msg("database source ready")
		return repo, func() { db.Close() }, nil
	}
}
