package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/vastriantafyllou/goal-tracker/api/handler"
	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/gateway"
	"github.com/vastriantafyllou/goal-tracker/internal/config"
	"github.com/vastriantafyllou/goal-tracker/internal/infrastructure/monitor"
	"github.com/vastriantafyllou/goal-tracker/internal/middleware"
	"github.com/vastriantafyllou/goal-tracker/internal/router"
	"github.com/vastriantafyllou/goal-tracker/internal/services/lifecycle"
	"github.com/vastriantafyllou/goal-tracker/pkg/httpcontext"
	"github.com/vastriantafyllou/goal-tracker/pkg/logger"
	"github.com/vastriantafyllou/goal-tracker/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.Listen(context.Background())
	defer stop()

	httpClient := &fasthttp.Client{
		Name:                cfg.AppName,
		ReadTimeout:         cfg.API.Timeout,
		WriteTimeout:        cfg.API.Timeout,
		MaxIdleConnDuration: time.Minute,
	}
	manager.Register("api_client", func(ctx context.Context) error {
		httpClient.CloseIdleConnections()
		return nil
	})

	api := gateway.New(gateway.Config{
		BaseURL: cfg.API.URL,
		Timeout: cfg.API.Timeout,
		Name:    cfg.AppName,
	}, httpClient, zapLogger)

	mon := monitor.New(httpClient, cfg.API.URL+cfg.API.HealthPath, cfg.API.MonitorInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	sessionOpts := []session.Option{session.WithLogger(zapLogger)}
	if cfg.Session.CheckExpiry {
		sessionOpts = append(sessionOpts, session.WithExpiryCheck(time.Now))
	}
	sessions := middleware.CookieSessions(api, sessionOpts...)

	deps := apiHandler.Deps{
		Adapter:  httpcontext.NewAdapter(cfg.Context.RequestTimeout),
		Sessions: sessions,
		API:      api,
		Logger:   zapLogger,
	}

	handlers := router.Handlers{
		Auth:       apiHandler.NewAuthHandler(deps),
		Goals:      apiHandler.NewGoalHandler(deps),
		Categories: apiHandler.NewCategoryHandler(deps),
		Users:      apiHandler.NewUserHandler(deps),
		Health:     apiHandler.NewHealthHandler(mon, deps),
	}

	r := router.New(handlers, router.Gates{
		Protected: middleware.RequireSession(sessions, "", zapLogger),
		Admin:     middleware.RequireSession(sessions, domain.RoleAdmin, zapLogger),
	})

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("api", api.BaseURL()),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
