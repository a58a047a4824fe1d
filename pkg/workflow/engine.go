package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruleflow/ruleflow/pkg/events"
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/otelhelper"
	"github.com/ruleflow/ruleflow/pkg/persistence"
	"github.com/ruleflow/ruleflow/pkg/registry"
	"github.com/ruleflow/ruleflow/pkg/template"
)

// defaultExecutionTimeout bounds a whole run (all actions including
// retries) when the operator has not configured one. A stuck external call
// must not block a workflow execution indefinitely.
const defaultExecutionTimeout = 5 * time.Minute

// Engine executes workflows triggered by inbound events. It holds no
// mutable state of its own; workflows and analytics live in persistence,
// and contexts are execution-scoped. Concurrent executions of different
// events are independent tasks; the engine does not serialize across them.
type Engine struct {
	persistence      persistence.Persistence
	registry         *registry.Registry
	matcher          *Matcher
	logger           *slog.Logger
	tracer           trace.Tracer
	executionTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithExecutionTimeout sets the per-run deadline wrapping the whole action
// sequence.
func WithExecutionTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.executionTimeout = timeout
		}
	}
}

// WithTracer enables span creation around runs and actions.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

func NewEngine(store persistence.Persistence, reg *registry.Registry, logger *slog.Logger, opts ...Option) *Engine {
	engine := &Engine{
		persistence:      store,
		registry:         reg,
		matcher:          NewMatcher(logger),
		logger:           logger.With("module", "workflow_engine"),
		executionTimeout: defaultExecutionTimeout,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// HandleEvent matches the event against the workspace's enabled workflows
// and executes every match. Each run is independent; one failing run does
// not stop the others. Persistence failures loading workflows propagate.
func (e *Engine) HandleEvent(ctx context.Context, event events.Event) ([]*models.ExecutionResult, error) {
	workflows, err := e.persistence.WorkflowsByWorkspace(ctx, event.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows for workspace %s: %w", event.WorkspaceID, err)
	}

	matched := e.matcher.Match(event, workflows)

	results := make([]*models.ExecutionResult, 0, len(matched))
	for _, workflow := range matched {
		result, err := e.Execute(ctx, workflow, event)
		if err != nil {
			return results, err
		}

		results = append(results, result)
	}

	return results, nil
}

// Execute runs one workflow against one event: condition chain, ordered
// actions with retry under the run deadline, then the analytics update.
//
// Action failures are recorded in the result and analytics, not returned as
// an error; the engine's contract is fire-and-record. The returned error is
// reserved for persistence failures.
func (e *Engine) Execute(ctx context.Context, workflow *models.Workflow, event events.Event) (*models.ExecutionResult, error) {
	executionID := "exec-" + uuid.New().String()[:8]

	logger := e.logger.With(
		"workflow_id", workflow.ID,
		"execution_id", executionID,
		"event_id", event.ID,
	)

	if e.tracer != nil {
		var span trace.Span

		ctx, span = e.tracer.Start(ctx, "workflow.execute", trace.WithAttributes(
			attribute.String(otelhelper.WorkflowIDKey, workflow.ID),
			attribute.String(otelhelper.ExecutionIDKey, executionID),
			attribute.String(otelhelper.EventIDKey, event.ID),
		))
		defer span.End()
	}

	if !evaluateChain(workflow.Conditions, event.Payload) {
		logger.Debug("Workflow conditions not satisfied, skipping execution")

		return &models.ExecutionResult{
			ExecutionID: executionID,
			WorkflowID:  workflow.ID,
			Status:      models.ExecutionStatusSuccess,
			StartedAt:   time.Now(),
		}, nil
	}

	logger.Info("Starting workflow execution")

	started := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, e.executionTimeout)
	defer cancel()

	result := e.runActions(runCtx, workflow, event, executionID, logger)
	result.StartedAt = started
	result.Duration = time.Since(started)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.Status = models.ExecutionStatusTimeout
		if result.Error == "" {
			result.Error = "execution exceeded the configured deadline"
		}
	}

	analytics, err := e.persistence.UpdateAnalytics(ctx, workflow.ID, result.Status, result.Duration)
	if err != nil {
		logger.Error("Failed to update workflow analytics", "error", err)

		return result, fmt.Errorf("failed to update analytics for workflow %s: %w", workflow.ID, err)
	}

	logger.Info("Workflow execution finished",
		"status", result.Status,
		"actions_run", result.ActionsRun,
		"duration", result.Duration,
		"error_rate", analytics.ErrorRatePercent)

	return result, nil
}

// runActions executes the workflow's actions strictly in ascending order.
// Action i+1 never starts before action i finished; exhausted retries abort
// the remaining actions. There is no partial-success continuation.
func (e *Engine) runActions(ctx context.Context, workflow *models.Workflow, event events.Event, executionID string, logger *slog.Logger) *models.ExecutionResult {
	result := &models.ExecutionResult{
		ExecutionID:   executionID,
		WorkflowID:    workflow.ID,
		Status:        models.ExecutionStatusSuccess,
		ActionResults: make(map[string]any),
	}

	for _, action := range workflow.OrderedActions() {
		actionLogger := logger.With("action_id", action.ID, "action_type", action.Type)

		executor, err := e.registry.CreateExecutor(string(action.Type), nil)
		if err != nil {
			actionLogger.Error("No executor for action type", "error", err)

			result.Status = models.ExecutionStatusFailed
			result.FailedAction = action.ID
			result.Error = err.Error()

			return result
		}

		resolved := action
		resolved.Configuration = template.RenderConfig(action.Configuration, event.Payload)

		// Action spans are siblings under the run span, so the span context
		// stays loop-local instead of replacing the run context.
		actionCtx := ctx

		var span trace.Span
		if e.tracer != nil {
			actionCtx, span = e.tracer.Start(ctx, "workflow.action", trace.WithAttributes(
				attribute.String(otelhelper.ActionIDKey, action.ID),
				attribute.String(otelhelper.ActionTypeKey, string(action.Type)),
			))
		}

		output, err := executeWithRetry(actionCtx, executor, resolved, event.Payload, actionLogger)

		if span != nil {
			if err != nil {
				otelhelper.SetError(span, err)
			}

			span.End()
		}

		if err != nil {
			actionLogger.Error("Action failed, aborting remaining actions", "error", err)

			result.Status = models.ExecutionStatusFailed
			result.FailedAction = action.ID
			result.Error = err.Error()

			return result
		}

		result.ActionsRun++
		result.ActionResults[action.ID] = output
	}

	return result
}
