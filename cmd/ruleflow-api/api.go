// Package main provides the Ruleflow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/ruleflow/ruleflow/pkg/content"
	"github.com/ruleflow/ruleflow/pkg/eventbus"
	"github.com/ruleflow/ruleflow/pkg/persistence"
	"github.com/ruleflow/ruleflow/pkg/registry"
	"github.com/ruleflow/ruleflow/pkg/steps"
	"github.com/ruleflow/ruleflow/pkg/variables"
	"github.com/ruleflow/ruleflow/pkg/web"
	"github.com/ruleflow/ruleflow/pkg/workflow"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	store persistence.Persistence,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		persistence: store,
		logger:      logger,
		registry:    reg,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	repository := workflow.NewRepository(a.persistence)

	handlers := web.NewAPIHandlers(
		repository,
		a.eventBus,
		a.validate,
		a.registry,
		variables.NewEvaluator(a.logger),
		steps.NewProcessor(a.logger),
		content.NewGenerator(a.logger),
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Ruleflow API")
	})

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/enable", handlers.EnableWorkflow)
	w.Post("/:id/disable", handlers.DisableWorkflow)
	w.Get("/:id/analytics", handlers.GetWorkflowAnalytics)

	app.Post("/events", handlers.IngestEvent)

	e := app.Group("/evaluate")
	e.Post("/variables", handlers.EvaluateVariables)
	e.Post("/steps", handlers.ProcessSteps)
	e.Post("/content", handlers.GenerateContent)

	app.Get("/executors", handlers.GetExecutors)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
