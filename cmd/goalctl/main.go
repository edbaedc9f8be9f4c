// Command goalctl is a terminal client for the goal tracker API. It keeps the
// access token in a bolt file or in Redis between invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/gateway"
	"github.com/vastriantafyllou/goal-tracker/internal/config"
	"github.com/vastriantafyllou/goal-tracker/internal/infrastructure/tokenstore"
	"github.com/vastriantafyllou/goal-tracker/internal/services/lifecycle"
	"github.com/vastriantafyllou/goal-tracker/pkg/logger"
	"github.com/vastriantafyllou/goal-tracker/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: "console",
		Output:   os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	ctx, stop := manager.Listen(context.Background())
	defer stop()
	defer func() {
		if err := manager.Shutdown(context.Background()); err != nil {
			zapLogger.Warn("cleanup failed", zap.Error(err))
		}
	}()

	storage, err := openTokenStore(ctx, cfg, manager)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token store: %v\n", err)
		return 1
	}

	api := gateway.New(gateway.Config{
		BaseURL: cfg.API.URL,
		Timeout: cfg.API.Timeout,
		Name:    "goalctl",
	}, nil, zapLogger)

	opts := []session.Option{session.WithLogger(zapLogger)}
	if cfg.Session.CheckExpiry {
		opts = append(opts, session.WithExpiryCheck(time.Now))
	}

	a := newApp(ctx, api, storage, zapLogger, os.Stdout, opts...)
	cmd := newRootCommand(a)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, domain.Message(err))
		return 1
	}
	return 0
}

func openTokenStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager) (session.Storage, error) {
	switch cfg.TokenStore.Kind {
	case config.TokenStoreRedis:
		store, err := tokenstore.DialRedis(ctx, cfg.Redis, cfg.TokenStore.Prefix, cfg.Context.RequestTimeout)
		if err != nil {
			return nil, err
		}
		manager.Register("redis", func(context.Context) error {
			return store.Close()
		})
		return store, nil
	default:
		store, err := tokenstore.OpenBolt(cfg.TokenStore.BoltPath)
		if err != nil {
			return nil, err
		}
		manager.Register("bolt", func(context.Context) error {
			return store.Close()
		})
		return store, nil
	}
}
