// Package web provides HTTP handlers and REST API endpoints for workflow
// management and rule evaluation.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/ruleflow/ruleflow/pkg/content"
	"github.com/ruleflow/ruleflow/pkg/eventbus"
	"github.com/ruleflow/ruleflow/pkg/events"
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/registry"
	"github.com/ruleflow/ruleflow/pkg/schema"
	"github.com/ruleflow/ruleflow/pkg/steps"
	"github.com/ruleflow/ruleflow/pkg/variables"
	"github.com/ruleflow/ruleflow/pkg/workflow"
)

type APIHandlers struct {
	repository    *workflow.Repository
	eventBus      eventbus.EventBus
	validator     *validator.Validate
	registry      *registry.Registry
	varEvaluator  *variables.Evaluator
	stepProcessor *steps.Processor
	contentGen    *content.Generator
}

func NewAPIHandlers(
	repository *workflow.Repository,
	bus eventbus.EventBus,
	validate *validator.Validate,
	reg *registry.Registry,
	varEvaluator *variables.Evaluator,
	stepProcessor *steps.Processor,
	contentGen *content.Generator,
) *APIHandlers {
	return &APIHandlers{
		repository:    repository,
		eventBus:      bus,
		validator:     validate,
		registry:      reg,
		varEvaluator:  varEvaluator,
		stepProcessor: stepProcessor,
		contentGen:    contentGen,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.repository.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Ruleflow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "Ruleflow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	if workspaceID := c.Query("workspace_id"); workspaceID != "" {
		workflows, err := h.repository.FetchByWorkspace(c.Context(), workspaceID)
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(workflows)
	}

	workflows, err := h.repository.FetchAll(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	found, err := h.repository.FetchByID(c.Context(), id)
	if err != nil {
		return handleRepositoryError(c, err)
	}

	return c.JSON(found)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	definition := &models.Workflow{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
		Trigger:     req.Trigger,
		Conditions:  req.Conditions,
		Actions:     req.Actions,
		Frequency:   req.Frequency,
		Owner:       req.Owner,
	}

	if err := schema.ValidateWorkflowActions(h.registry, definition); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.repository.Create(c.Context(), definition)
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	existing, err := h.repository.FetchByID(c.Context(), id)
	if err != nil {
		return handleRepositoryError(c, err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}

	if req.Description != nil {
		existing.Description = *req.Description
	}

	if req.Trigger != nil {
		existing.Trigger = *req.Trigger
	}

	if req.Conditions != nil {
		existing.Conditions = req.Conditions
	}

	if req.Actions != nil {
		existing.Actions = req.Actions
	}

	if req.Frequency != nil {
		existing.Frequency = *req.Frequency
	}

	if err := schema.ValidateWorkflowActions(h.registry, existing); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.repository.Update(c.Context(), id, existing)
	if err != nil {
		return handleRepositoryError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.repository.Delete(c.Context(), id); err != nil {
		return handleRepositoryError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) EnableWorkflow(c fiber.Ctx) error {
	return h.setEnabled(c, true)
}

func (h *APIHandlers) DisableWorkflow(c fiber.Ctx) error {
	return h.setEnabled(c, false)
}

func (h *APIHandlers) setEnabled(c fiber.Ctx, enabled bool) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	updated, err := h.repository.SetEnabled(c.Context(), id, enabled)
	if err != nil {
		return handleRepositoryError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) GetWorkflowAnalytics(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	found, err := h.repository.FetchByID(c.Context(), id)
	if err != nil {
		return handleRepositoryError(c, err)
	}

	return c.JSON(found.Analytics)
}

func (h *APIHandlers) GetExecutors(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"executors": h.registry.AvailableExecutors(),
	})
}

// IngestEvent accepts an inbound event and publishes it to the bus for
// asynchronous trigger matching. The API acknowledges receipt; execution
// outcomes surface through workflow analytics.
func (h *APIHandlers) IngestEvent(c fiber.Ctx) error {
	var req IngestEventRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	event := events.Event{
		ID:           uuid.New().String(),
		WorkspaceID:  req.WorkspaceID,
		ConnectionID: req.ConnectionID,
		EventType:    req.EventType,
		Source:       req.Source,
		Payload:      req.Payload,
		Timestamp:    time.Now().UTC(),
	}

	received := events.EventReceived{
		BaseEvent: events.BaseEvent{
			ID:        h.eventBus.GenerateID(),
			Type:      events.EventReceivedEvent,
			Timestamp: event.Timestamp,
		},
		Event: event,
	}

	if err := h.eventBus.Publish(c.Context(), event.WorkspaceID, received); err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"event_id": event.ID,
		"status":   "accepted",
	})
}

// EvaluateVariables validates variable values and resolves dependencies.
// Rule violations come back in the result body, not as an HTTP error; only
// malformed requests and cyclic dependency declarations are rejected.
func (h *APIHandlers) EvaluateVariables(c fiber.Ctx) error {
	var req EvaluateVariablesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := variables.CheckCycles(req.Variables); err != nil {
		return badRequest(c, err.Error())
	}

	result := h.varEvaluator.Evaluate(req.Variables, req.Values)

	return c.JSON(result)
}

func (h *APIHandlers) ProcessSteps(c fiber.Ctx) error {
	var req ProcessStepsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	processed := h.stepProcessor.Process(req.Steps, &req.Context)
	resolved := steps.ResolveConflicts(processed)

	return c.JSON(fiber.Map{
		"processed_steps": resolved,
	})
}

func (h *APIHandlers) GenerateContent(c fiber.Ctx) error {
	var req GenerateContentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	generated := h.contentGen.Generate(req.Bindings, &req.Context)

	return c.JSON(fiber.Map{
		"content": generated,
	})
}
