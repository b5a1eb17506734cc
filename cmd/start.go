package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"asset-sync/core/loader"
	"asset-sync/core/logger"
	"asset-sync/core/middleware/auth"
	"asset-sync/core/middleware/rayid"
	"asset-sync/core/server"
	"asset-sync/feature/gateway"
	"asset-sync/feature/integrity"
	"asset-sync/feature/resource"
	"asset-sync/feature/synchronizer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-sync/docs/swagger"
)

// @title Asset Sync API
// @version 1.0
// @description API for managing the offline cache of a web application bundle.
// @host localhost:8080
// @BasePath /api

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset sync server",
	Long:  `Starts the HTTP server, runs the first update and serves the bundle through the gateway.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 1. Configuration, logger, cache backend and synchronizer
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		logg := a.logger
		zap.ReplaceGlobals(logg)

		// 2. First update cycle
		if a.cfg.Sync.UpdateOnStart {
			if result, err := a.sync.Update(ctx); err != nil {
				// Reads fall back to the network until the next successful update.
				logg.Error("Initial update failed", zap.Error(err))
			} else if result != nil {
				logg.Info("Initial update completed",
					zap.String("outcome", string(result.Outcome)),
					zap.String("branch", string(result.Branch)),
					zap.Int("evicted", result.Summary.Evicted))
			}
		}

		// 3. Build manifest watcher
		if a.cfg.Sync.Watch {
			w, err := synchronizer.NewWatcher(a.cfg.Sync.ManifestPath, a.sync, logg)
			if err != nil {
				return err
			}
			go func() {
				if err := w.Run(ctx); err != nil {
					logg.Error("Manifest watcher stopped", zap.Error(err))
				}
			}()
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 5. Management API behind the API key
		api := app.Group(server.APIPrefix, auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		mgr := loader.NewManager()
		mgr.Register(synchronizer.NewFeature(a.sync))
		mgr.Register(resource.NewFeature(a.sync, logg))
		mgr.Register(integrity.NewFeature(a.sync, a.db, logg))
		if err := mgr.LoadAll(api); err != nil {
			return err
		}

		// 6. Gateway last, it matches every remaining path
		public := loader.NewManager()
		public.Register(gateway.NewFeature(a.sync, logg, a.cfg.Server.Gateway))
		if err := public.LoadAll(app); err != nil {
			return err
		}

		// 7. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server",
				zap.String("port", a.cfg.Server.Port),
				zap.String("origin", a.sync.Origin()),
				zap.Bool("gateway", a.cfg.Server.Gateway))
			errCh <- app.Listen(a.cfg.Server.Address())
		}()

		// 8. Graceful Shutdown
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
