package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recondash/internal/http/middleware"
	"recondash/internal/service"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Service          service.ReconService
	Pinger           Pinger
	DefaultTolerance int
	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; derivations live in the service.
func RegisterRoutes(app *fiber.App, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("handler")

	app.Get("/health", HealthCheck(d.Pinger))
	app.Get("/healthz", LivenessProbe())

	if d.Gatherer != nil {
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/kpi", KPI(d.Service, log))
	api.Get("/3way", ThreeWay(d.Service, d.DefaultTolerance, log))
	api.Get("/heatmap", Heatmap(d.Service, log))
	api.Get("/caseflow", CaseFlow(d.Service, log))
	api.Get("/exceptions", Exceptions(d.Service, log))
	api.Get("/dashboard", Dashboard(d.Service, d.DefaultTolerance))
	api.Get("/flow-stages", FlowStages())
}
