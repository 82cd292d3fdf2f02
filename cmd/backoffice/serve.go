package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/dashboard/httpapi"
	"github.com/goliatone/go-backoffice/pkg/config"
)

type serveCmd struct {
	Addr string `help:"Listen address, overrides server.addr."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.boot(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	app, sessions, err := newServer(rt.backoffice, rt.cfg.Server, rt.logger)
	if err != nil {
		return err
	}
	defer sessions.Close()

	addr := rt.cfg.Server.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	rt.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// newServer builds the fiber app through the go-router adapter with the API
// mounted under /api.
func newServer(bo *dashboard.Backoffice, cfg config.ServerConfig, logger *zap.Logger) (*fiber.App, *httpapi.Sessions, error) {
	server := router.NewFiberAdapter()
	app := server.WrappedRouter()
	app.Use(recover.New())
	app.Use(requestLogger(logger))
	sessions, err := httpapi.Register(httpapi.Config[*fiber.App]{
		Router:     server.Router(),
		Backoffice: bo,
		Sessions: httpapi.NewSessions(bo.NewWorkspace,
			httpapi.WithMaxSessions(cfg.MaxSessions),
			httpapi.WithIdleTTL(cfg.SessionTTL),
		),
		Telemetry: dashboard.NewLoggerTelemetry(logger),
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return app, sessions, nil
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		logger.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(started)),
		)
		return err
	}
}
