package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/ruleflow/ruleflow/pkg/eventbus"
	"github.com/ruleflow/ruleflow/pkg/events"
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/persistence"
	"github.com/ruleflow/ruleflow/pkg/workflow"
)

// Scheduler emits one scheduler tick event per minute for every workspace
// holding an enabled schedule-triggered workflow. Whether a given workflow
// fires on the tick is the trigger matcher's decision.
type Scheduler struct {
	repository *workflow.Repository
	eventBus   eventbus.EventBus
	logger     *slog.Logger
	cron       *cron.Cron
}

func NewScheduler(store persistence.Persistence, eventBus eventbus.EventBus, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		repository: workflow.NewRepository(store),
		eventBus:   eventBus,
		logger:     logger.With("module", "scheduler"),
		cron:       cron.New(),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		s.tick(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "Scheduler started")

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().UTC().Truncate(time.Minute)

	workflows, err := s.repository.FetchEnabled(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load workflows for scheduler tick", "error", err)

		return
	}

	workspaces := make(map[string]bool)

	for _, item := range workflows {
		if item.Trigger.Type == models.TriggerTypeSchedule {
			workspaces[item.WorkspaceID] = true
		}
	}

	for workspaceID := range workspaces {
		event := events.Event{
			ID:          uuid.New().String(),
			WorkspaceID: workspaceID,
			EventType:   "scheduler.tick",
			Source:      "scheduler",
			Payload: map[string]any{
				"tick": now.Format(time.RFC3339),
			},
			Timestamp: now,
		}

		received := events.EventReceived{
			BaseEvent: events.NewBaseEvent(events.EventReceivedEvent, ""),
			Event:     event,
		}

		if err := s.eventBus.Publish(ctx, workspaceID, received); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish scheduler tick",
				"error", err,
				"workspace_id", workspaceID)
		}
	}

	s.logger.DebugContext(ctx, "Scheduler tick published", "workspaces", len(workspaces), "tick", now)
}
