// Package workflow implements the trigger/condition/action engine: matching
// inbound events to workflows, evaluating condition chains and executing
// ordered actions with retry and analytics recording.
package workflow

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ruleflow/ruleflow/pkg/events"
	"github.com/ruleflow/ruleflow/pkg/models"
)

// Matcher routes inbound events to workflows whose trigger configuration
// they satisfy. Disabled workflows never match.
type Matcher struct {
	logger *slog.Logger
}

func NewMatcher(logger *slog.Logger) *Matcher {
	return &Matcher{
		logger: logger.With("module", "trigger_matcher"),
	}
}

// Match returns the workflows the event should trigger.
func (m *Matcher) Match(event events.Event, workflows []*models.Workflow) []*models.Workflow {
	var matched []*models.Workflow

	for _, workflow := range workflows {
		if !workflow.Enabled {
			continue
		}

		if m.matchTrigger(event, workflow.Trigger) {
			m.logger.Debug("Event matched workflow",
				"event_id", event.ID,
				"workflow_id", workflow.ID,
				"trigger_type", workflow.Trigger.Type)

			matched = append(matched, workflow)
		}
	}

	m.logger.Debug("Completed trigger matching",
		"event_type", event.EventType,
		"source", event.Source,
		"matches_found", len(matched))

	return matched
}

// matchTrigger is the single dispatch point over the trigger variants.
func (m *Matcher) matchTrigger(event events.Event, trigger models.Trigger) bool {
	switch trigger.Type {
	case models.TriggerTypeWebhook:
		return m.matchWebhook(event, trigger.Webhook)
	case models.TriggerTypeSchedule:
		return m.matchSchedule(event, trigger.Schedule)
	case models.TriggerTypeEvent:
		return m.matchEvent(event, trigger.Event)
	default:
		m.logger.Warn("Unknown trigger type", "type", trigger.Type)

		return false
	}
}

func (m *Matcher) matchWebhook(event events.Event, config *models.WebhookTriggerConfig) bool {
	if config == nil || event.Source != "webhook" {
		return false
	}

	path, _ := event.Payload["path"].(string)
	if path != config.Path {
		return false
	}

	if config.Secret != "" {
		secret, _ := event.Payload["secret"].(string)
		if secret != config.Secret {
			m.logger.Warn("Webhook secret mismatch", "path", path)

			return false
		}
	}

	return true
}

// matchSchedule matches scheduler ticks whose tick time lands on the cron
// expression's grid, minute resolution.
func (m *Matcher) matchSchedule(event events.Event, config *models.ScheduleTriggerConfig) bool {
	if config == nil || event.Source != "scheduler" {
		return false
	}

	schedule, err := cron.ParseStandard(config.Cron)
	if err != nil {
		m.logger.Warn("Invalid cron expression in schedule trigger", "cron", config.Cron, "error", err)

		return false
	}

	tick := event.Timestamp
	if config.Timezone != "" {
		location, err := time.LoadLocation(config.Timezone)
		if err != nil {
			m.logger.Warn("Invalid timezone in schedule trigger", "timezone", config.Timezone, "error", err)

			return false
		}

		tick = tick.In(location)
	}

	tick = tick.Truncate(time.Minute)

	return schedule.Next(tick.Add(-time.Minute)).Equal(tick)
}

func (m *Matcher) matchEvent(event events.Event, config *models.EventTriggerConfig) bool {
	if config == nil {
		return false
	}

	if config.Source != "" && config.Source != event.Source {
		return false
	}

	for _, eventType := range config.EventTypes {
		if eventType == event.EventType {
			return true
		}
	}

	return false
}
