package workflow

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleflow/ruleflow/pkg/events"
	"github.com/ruleflow/ruleflow/pkg/models"
)

func testMatcher() *Matcher {
	return NewMatcher(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

func webhookWorkflow(id, path, secret string) *models.Workflow {
	return &models.Workflow{
		ID:      id,
		Enabled: true,
		Trigger: models.Trigger{
			Type:    models.TriggerTypeWebhook,
			Webhook: &models.WebhookTriggerConfig{Path: path, Secret: secret},
		},
	}
}

func TestMatchWebhook(t *testing.T) {
	matcher := testMatcher()

	workflows := []*models.Workflow{
		webhookWorkflow("wf-1", "/hooks/orders", ""),
		webhookWorkflow("wf-2", "/hooks/other", ""),
	}

	event := events.Event{
		ID:     "ev-1",
		Source: "webhook",
		Payload: map[string]any{
			"path": "/hooks/orders",
		},
	}

	matched := matcher.Match(event, workflows)

	require.Len(t, matched, 1)
	assert.Equal(t, "wf-1", matched[0].ID)
}

func TestMatchWebhookSecret(t *testing.T) {
	matcher := testMatcher()

	workflows := []*models.Workflow{
		webhookWorkflow("wf-1", "/hooks/orders", "s3cret"),
	}

	wrongSecret := events.Event{
		Source:  "webhook",
		Payload: map[string]any{"path": "/hooks/orders", "secret": "nope"},
	}
	assert.Empty(t, matcher.Match(wrongSecret, workflows))

	rightSecret := events.Event{
		Source:  "webhook",
		Payload: map[string]any{"path": "/hooks/orders", "secret": "s3cret"},
	}
	assert.Len(t, matcher.Match(rightSecret, workflows), 1)
}

func TestMatchSkipsDisabledWorkflows(t *testing.T) {
	matcher := testMatcher()

	disabled := webhookWorkflow("wf-1", "/hooks/orders", "")
	disabled.Enabled = false

	event := events.Event{
		Source:  "webhook",
		Payload: map[string]any{"path": "/hooks/orders"},
	}

	assert.Empty(t, matcher.Match(event, []*models.Workflow{disabled}))
}

func TestMatchSchedule(t *testing.T) {
	matcher := testMatcher()

	hourly := &models.Workflow{
		ID:      "wf-1",
		Enabled: true,
		Trigger: models.Trigger{
			Type:     models.TriggerTypeSchedule,
			Schedule: &models.ScheduleTriggerConfig{Cron: "0 * * * *"},
		},
	}

	onTheHour := events.Event{
		Source:    "scheduler",
		Timestamp: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
	}
	assert.Len(t, matcher.Match(onTheHour, []*models.Workflow{hourly}), 1)

	offTheHour := events.Event{
		Source:    "scheduler",
		Timestamp: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
	}
	assert.Empty(t, matcher.Match(offTheHour, []*models.Workflow{hourly}))
}

func TestMatchScheduleInvalidCron(t *testing.T) {
	matcher := testMatcher()

	broken := &models.Workflow{
		ID:      "wf-1",
		Enabled: true,
		Trigger: models.Trigger{
			Type:     models.TriggerTypeSchedule,
			Schedule: &models.ScheduleTriggerConfig{Cron: "not a cron"},
		},
	}

	event := events.Event{
		Source:    "scheduler",
		Timestamp: time.Now(),
	}

	assert.Empty(t, matcher.Match(event, []*models.Workflow{broken}))
}

func TestMatchScheduleIgnoresNonSchedulerEvents(t *testing.T) {
	matcher := testMatcher()

	hourly := &models.Workflow{
		ID:      "wf-1",
		Enabled: true,
		Trigger: models.Trigger{
			Type:     models.TriggerTypeSchedule,
			Schedule: &models.ScheduleTriggerConfig{Cron: "* * * * *"},
		},
	}

	event := events.Event{
		Source:    "webhook",
		Timestamp: time.Now(),
	}

	assert.Empty(t, matcher.Match(event, []*models.Workflow{hourly}))
}

func TestMatchEvent(t *testing.T) {
	matcher := testMatcher()

	onTaskDone := &models.Workflow{
		ID:      "wf-1",
		Enabled: true,
		Trigger: models.Trigger{
			Type: models.TriggerTypeEvent,
			Event: &models.EventTriggerConfig{
				EventTypes: []string{"task.completed", "task.reopened"},
			},
		},
	}

	matched := matcher.Match(events.Event{EventType: "task.completed", Source: "app"}, []*models.Workflow{onTaskDone})
	assert.Len(t, matched, 1)

	matched = matcher.Match(events.Event{EventType: "task.created", Source: "app"}, []*models.Workflow{onTaskDone})
	assert.Empty(t, matched)
}

func TestMatchEventSourceFilter(t *testing.T) {
	matcher := testMatcher()

	fromCRM := &models.Workflow{
		ID:      "wf-1",
		Enabled: true,
		Trigger: models.Trigger{
			Type: models.TriggerTypeEvent,
			Event: &models.EventTriggerConfig{
				EventTypes: []string{"record.updated"},
				Source:     "crm",
			},
		},
	}

	assert.Len(t, matcher.Match(events.Event{EventType: "record.updated", Source: "crm"}, []*models.Workflow{fromCRM}), 1)
	assert.Empty(t, matcher.Match(events.Event{EventType: "record.updated", Source: "billing"}, []*models.Workflow{fromCRM}))
}
