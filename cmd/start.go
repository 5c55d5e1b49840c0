package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"flight-logger/core/loader"
	"flight-logger/core/logger"
	"flight-logger/core/metrics"
	"flight-logger/core/middleware/rayid"
	"flight-logger/core/reconcile"
	"flight-logger/core/watcher"
	"flight-logger/feature/ingest"
	"flight-logger/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "flight-logger/docs/swagger"
)

// @title Flight Logger API
// @version 1.0
// @description Status and lookup API for the ADS-B flight logger.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Watch for snapshots and record them",
	Long: `Watches the receiver directory for new history files, reconciles each one
into the database and, when enabled, serves the status API.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := bootstrap()
	if err != nil {
		return err
	}
	defer d.log.Sync()
	zap.ReplaceGlobals(d.log)

	reg := metrics.NewRegistry()
	opts := []ingest.Option{ingest.WithMetrics(reg)}
	archiver, err := d.archiver(ctx)
	if err != nil {
		return err
	}
	if archiver != nil {
		opts = append(opts, ingest.WithArchiver(archiver))
	}

	engine := reconcile.NewEngine(d.store, d.log.Named("reconcile"))
	worker := ingest.NewWorker(engine, d.log.Named("ingest"), opts...)

	w, err := watcher.New(d.cfg.Watcher, d.log.Named("watcher"),
		watcher.WithDropHook(worker.RecordDrop),
		watcher.WithQueueHook(worker.RecordQueueDepth),
	)
	if err != nil {
		return err
	}

	var app *fiber.App
	if d.cfg.Server.Enabled {
		app = newStatusApp(d, worker, reg)
		go func() {
			d.log.Info("Starting status server", zap.String("port", d.cfg.Server.Port))
			if err := app.Listen(d.cfg.Server.Addr()); err != nil {
				d.log.Error("Status server stopped", zap.Error(err))
				stop()
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx, w.Queue())
	}()

	// Run returns when ctx is cancelled or the directory cannot be watched.
	watchErr := w.Run(ctx)
	stop()
	wg.Wait()

	d.log.Info("Shutting down")
	if app != nil {
		_ = app.Shutdown()
	}
	if watchErr != nil {
		return fmt.Errorf("watcher failed: %w", watchErr)
	}
	return nil
}

func newStatusApp(d *deps, worker *ingest.Worker, reg *metrics.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(d.log, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Swagger documentation is public, like /health and /metrics.
	app.Get("/swagger/*", swagger.HandlerDefault)

	mgr := loader.NewManager()
	mgr.Register(status.NewFeature(d.store, worker, reg.Gatherer(), d.log.Named("status"), d.cfg.Server.ApiKey))
	if err := mgr.LoadAll(app); err != nil {
		d.log.Fatal("Failed to load features", zap.Error(err))
	}
	d.log.Info("Loaded features", zap.Strings("features", mgr.Names()))
	return app
}
