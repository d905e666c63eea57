package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/transcript-dubber/pkg/config"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	dubbingHandler *Dubbing
	metrics        http.Handler
	checks         map[string]Pinger
}

// NewRouter creates a new router with all handlers. metrics and checks may
// be nil.
func NewRouter(cfg *config.Config, dubbingHandler *Dubbing, metrics http.Handler, checks map[string]Pinger) *Router {
	return &Router{
		cfg:            cfg,
		dubbingHandler: dubbingHandler,
		metrics:        metrics,
		checks:         checks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if rt.dubbingHandler != nil {
		e.POST("/upload-csv/", rt.dubbingHandler.UploadCSV)
	} else {
		e.POST("/upload-csv/", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(rt.checks))
	for name, check := range rt.checks {
		if err := check.Ping(ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}

	return c.JSON(code, map[string]interface{}{
		"status":       status,
		"environment":  environment,
		"dependencies": deps,
	})
}

// PingFunc adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
