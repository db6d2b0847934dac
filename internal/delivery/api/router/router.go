// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"minmod/config"
	"minmod/internal/delivery/api/router/handler"
	"minmod/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	GradeTonnageHandler *handler.GradeTonnageHandler
	Metrics             *metrics.Collector `optional:"true"`
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	gradeTonnageHandler *handler.GradeTonnageHandler
	metrics             *metrics.Collector
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		gradeTonnageHandler: params.GradeTonnageHandler,
		metrics:             params.Metrics,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.metrics != nil && r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	apiV1 := e.Group("/api/v1")
	{
		apiV1.GET("/commodities", r.gradeTonnageHandler.ListCommodities)
		apiV1.GET("/grade-tonnage", r.gradeTonnageHandler.Aggregate)
		apiV1.GET("/grade-tonnage.csv", r.gradeTonnageHandler.ExportCSV)
		apiV1.GET("/grade-tonnage.geojson", r.gradeTonnageHandler.ExportGeoJSON)
		apiV1.GET("/cache", r.gradeTonnageHandler.CacheStatus)
	}
}
