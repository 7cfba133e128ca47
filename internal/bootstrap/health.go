package bootstrap

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/amit-sw/ChatAuthenticated/internal/adapter/supabase"
	"github.com/amit-sw/ChatAuthenticated/internal/telemetry"
)

// CheckBackend pings the Supabase auth health endpoint on startup. A failure
// is logged, not fatal: backend errors also surface per render, and the
// service can come up before the backend does.
func CheckBackend(lc fx.Lifecycle, client *supabase.Client, tel *telemetry.Provider, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			pingCtx, span := tel.Tracer().Start(pingCtx, "supabase.health")
			defer span.End()

			if err := client.Health(pingCtx); err != nil {
				span.RecordError(err)
				logger.Warn("supabase backend unreachable", zap.Error(err))
				return nil
			}
			logger.Info("supabase backend reachable")
			return nil
		},
	})
}
