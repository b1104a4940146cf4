// Package api assembles the optional HTTP status server: health probes,
// Prometheus metrics, the watch API and its Swagger UI.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/card-price-watcher/api/openapi"
	"github.com/donaldgifford/card-price-watcher/internal/api/handlers"
	mw "github.com/donaldgifford/card-price-watcher/internal/api/middleware"
)

// Watcher is what the status server needs from the running watcher.
type Watcher interface {
	handlers.SnapshotProvider
	handlers.ReadinessChecker
}

// NewServer builds the Echo instance serving the status API. A nil trigger
// leaves the manual cycle endpoint unregistered.
func NewServer(
	log *slog.Logger,
	version string,
	w Watcher,
	trigger handlers.CycleTrigger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())

	health := handlers.NewHealthHandler(w)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("card-price-watcher", version))
	openapi.RegisterRoutes(e, openapi.DefaultSpecPath)
	handlers.RegisterWatchRoutes(api, handlers.NewWatchHandler(w))
	if trigger != nil {
		handlers.RegisterTriggerRoutes(api, handlers.NewCycleHandler(trigger))
	}

	return e
}
