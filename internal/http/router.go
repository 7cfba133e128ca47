package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/amit-sw/ChatAuthenticated/internal/config"
	"github.com/amit-sw/ChatAuthenticated/internal/http/handler"
	httpmiddleware "github.com/amit-sw/ChatAuthenticated/internal/http/middleware"
	"github.com/amit-sw/ChatAuthenticated/internal/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, dashboard *handler.DashboardHandler, rateLimiter *middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(logger))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpmiddleware.SessionCookie(cfg.Environment != "development"))

	r.SetHTMLTemplate(handler.Templates())

	r.GET("/", dashboard.Index)
	r.GET("/page/:group/:page", dashboard.Page)
	r.POST("/logout", dashboard.Logout)
	r.GET("/healthz", dashboard.Health)

	return r
}
