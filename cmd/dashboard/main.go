package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/amit-sw/ChatAuthenticated/internal/adapter/cache"
	"github.com/amit-sw/ChatAuthenticated/internal/adapter/supabase"
	"github.com/amit-sw/ChatAuthenticated/internal/bootstrap"
	"github.com/amit-sw/ChatAuthenticated/internal/config"
	httptransport "github.com/amit-sw/ChatAuthenticated/internal/http"
	"github.com/amit-sw/ChatAuthenticated/internal/http/handler"
	"github.com/amit-sw/ChatAuthenticated/internal/middleware"
	"github.com/amit-sw/ChatAuthenticated/internal/repository"
	"github.com/amit-sw/ChatAuthenticated/internal/server"
	"github.com/amit-sw/ChatAuthenticated/internal/service/roles"
	"github.com/amit-sw/ChatAuthenticated/internal/service/session"
	"github.com/amit-sw/ChatAuthenticated/internal/telemetry"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newSupabaseClient,
			newSessionStore,
			newSessionManager,
			newRoleStore,
			roles.NewRouter,
			newRateLimiter,
			handler.NewDashboardHandler,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, bootstrap.CheckBackend, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newSupabaseClient(cfg config.Config) (*supabase.Client, error) {
	return supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
}

func newSessionStore(lc fx.Lifecycle, cfg config.Config) (repository.SessionStore, error) {
	if cfg.SessionStore != "redis" {
		return repository.NewMemorySessionStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisSessionStore(client, cfg.SessionTTL), nil
}

func newSessionManager(client *supabase.Client, store repository.SessionStore, logger *zap.Logger) *session.Manager {
	return session.NewManager(client, store, logger)
}

func newRoleStore(lc fx.Lifecycle, cfg config.Config, client *supabase.Client) (repository.RoleStore, error) {
	if cfg.DatabaseURL == "" {
		return repository.NewSupabaseRoleRepo(client), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	return repository.NewPostgresRoleRepo(pool), nil
}

func newRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimitRPM)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			logger.Info("http server listening", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
