// Package server boots the application: config, connections, queue
// workers, schedules and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aranya-labs/aranya/app/jobs"
	"github.com/aranya-labs/aranya/app/routes"
	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/config"
	"github.com/aranya-labs/aranya/pkg/cache"
	"github.com/aranya-labs/aranya/pkg/database"
	"github.com/aranya-labs/aranya/pkg/grpcops"
	"github.com/aranya-labs/aranya/pkg/logger"
	"github.com/aranya-labs/aranya/pkg/metrics"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/queue"
	"github.com/aranya-labs/aranya/pkg/reqid"
	"github.com/aranya-labs/aranya/pkg/router"
	"github.com/aranya-labs/aranya/pkg/schedule"
	"github.com/aranya-labs/aranya/pkg/storage"
)

const (
	queueWorkers    = 4
	shutdownTimeout = 15 * time.Second
)

// Start brings the whole stack up and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("cache: redis unavailable, falling back where possible", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	storage.Connect()

	jobs.RegisterAll()
	services.RegisterNotifications()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.OrdersHub.Run()
	queue.StartWorkers(ctx, queueWorkers)

	services.NewMarketingService().RegisterSchedules()
	schedule.Start(ctx)

	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err := grpcops.Start(port)
		if err != nil {
			return err
		}
		defer grpcops.Stop(grpcSrv)
	}

	return serveHTTP(ctx, cancel)
}

func serveHTTP(ctx context.Context, cancel context.CancelFunc) error {
	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
		metrics.Middleware(),
	)
	routes.RegisterAPI(r)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case s := <-sig:
		logger.Info("http: shutting down", "signal", s.String())
	}

	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("http: stopped")
	return nil
}
