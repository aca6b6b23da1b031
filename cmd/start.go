package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ge-sync/core/config"
	"ge-sync/core/loader"
	"ge-sync/core/logger"
	"ge-sync/core/middleware/auth"
	"ge-sync/core/middleware/rayid"

	"ge-sync/feature/integrity"
	"ge-sync/feature/integrity/checks"
	"ge-sync/feature/inventory"
	"ge-sync/feature/inventory/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "ge-sync/docs/swagger"
)

// @title GE Sync API
// @version 1.0
// @description API for reconciling warehouse inventory against GE snapshots.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP server, the optional sync scheduler and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Wire the sync engine (database is required)
		eng, err := newEngine(context.Background(), cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize sync engine", zap.Error(err))
		}
		logg = logg.With(zap.String("company", cfg.Sync.CompanyID))
		logg.Info("Connected to inventory database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           cfg.Server.RequestTimeout(),
			WriteTimeout:          cfg.Server.RequestTimeout(),
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		svc := inventory.NewService(eng.orchestrator, eng.locker, cfg.Sync.CompanyID, logg)
		mgr.Register(inventory.NewFeature(svc))

		var finder checks.SnapshotFinder
		if eng.snapshots != nil {
			finder = eng.snapshots
		}
		maxAge := time.Duration(cfg.Sync.SnapshotMaxAgeMinutes) * time.Minute
		mgr.Register(integrity.NewFeature(integrity.NewService(eng.storage, cfg.Storage.Bucket, finder, eng.db, cfg.Sync.CompanyID, maxAge, logg)))

		// Middleware Registration
		// RayID first so every line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout())
			defer cancel()
			c.SetUserContext(ctx)

			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth protects everything else
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Scheduler (optional)
		var scheduler *sync.Scheduler
		if cfg.Sync.Schedule != "" {
			scheduler, err = sync.NewScheduler(
				cfg.Sync.Schedule,
				eng.orchestrator,
				eng.locker,
				cfg.Sync.CompanyID,
				cfg.Sync.LocationList(),
				cfg.Server.RequestTimeout(),
				logg,
			)
			if err != nil {
				logg.Fatal("Failed to create scheduler", zap.Error(err))
			}
			logg.Info("Sync schedule configured", zap.String("schedule", cfg.Sync.Schedule))
			scheduler.Start()
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if scheduler != nil {
			select {
			case <-scheduler.Stop().Done():
			case <-time.After(cfg.Server.RequestTimeout()):
				logg.Warn("Scheduled sync still running at shutdown")
			}
		}
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
