package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruleflow/ruleflow/pkg/eventbus"
	"github.com/ruleflow/ruleflow/pkg/events"
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/persistence"
	"github.com/ruleflow/ruleflow/pkg/registry"
	"github.com/ruleflow/ruleflow/pkg/workflow"
)

type WorkerManager struct {
	id          string
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	engine      *workflow.Engine
	scheduler   *Scheduler
}

func NewWorkerManager(
	id string,
	store persistence.Persistence,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	reg *registry.Registry,
	engineOpts ...workflow.Option,
) *WorkerManager {
	engine := workflow.NewEngine(store, reg, logger, engineOpts...)

	return &WorkerManager{
		id:          id,
		logger:      logger.With("module", "ruleflow-worker", "worker_id", id),
		persistence: store,
		registry:    reg,
		eventBus:    eventBus,
		engine:      engine,
		scheduler:   NewScheduler(store, eventBus, logger),
	}
}

func (w *WorkerManager) Start(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Starting worker manager", "worker_id", w.id)

	err := w.eventBus.Handle(events.EventReceivedEvent, w.handleEventReceived)
	if err != nil {
		return err
	}

	err = w.eventBus.Subscribe(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to subscribe to event bus", "error", err)

		return err
	}

	if err := w.scheduler.Start(ctx); err != nil {
		return err
	}
	defer w.scheduler.Stop()

	w.logger.InfoContext(ctx, "Worker started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	w.logger.InfoContext(ctx, "Shutting down worker...")

	return nil
}

func (w *WorkerManager) handleEventReceived(ctx context.Context, event any) error {
	receivedEvent, ok := event.(*events.EventReceived)
	if !ok {
		w.logger.ErrorContext(ctx, "Invalid event type for EventReceived")

		return nil
	}

	logger := w.logger.With(
		"event_id", receivedEvent.Event.ID,
		"workspace_id", receivedEvent.Event.WorkspaceID,
		"source", receivedEvent.Event.Source,
	)
	logger.InfoContext(ctx, "Processing received event")

	results, err := w.engine.HandleEvent(ctx, receivedEvent.Event)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to handle event", "error", err)
	}

	for _, result := range results {
		w.publishResult(ctx, result)
	}

	return err
}

func (w *WorkerManager) publishResult(ctx context.Context, result *models.ExecutionResult) {
	var lifecycle eventbus.Event

	if result.Status == models.ExecutionStatusSuccess {
		event := events.WorkflowFinished{
			BaseEvent:   events.NewBaseEvent(events.WorkflowFinishedEvent, result.WorkflowID),
			ExecutionID: result.ExecutionID,
			ActionsRun:  result.ActionsRun,
			Duration:    result.Duration,
		}
		event.WorkerID = w.id
		lifecycle = event
	} else {
		event := events.WorkflowFailed{
			BaseEvent:    events.NewBaseEvent(events.WorkflowFailedEvent, result.WorkflowID),
			ExecutionID:  result.ExecutionID,
			FailedAction: result.FailedAction,
			Error:        result.Error,
			Duration:     result.Duration,
		}
		event.WorkerID = w.id
		lifecycle = event
	}

	if err := w.eventBus.Publish(ctx, result.WorkflowID, lifecycle); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish workflow lifecycle event",
			"error", err,
			"workflow_id", result.WorkflowID)
	}
}
