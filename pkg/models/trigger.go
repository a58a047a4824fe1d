package models

// TriggerType is the closed set of trigger kinds a workflow can declare.
type TriggerType string

const (
	TriggerTypeWebhook  TriggerType = "webhook"
	TriggerTypeSchedule TriggerType = "schedule"
	TriggerTypeEvent    TriggerType = "event"
)

// WebhookTriggerConfig matches inbound webhook deliveries by path and shared
// secret.
type WebhookTriggerConfig struct {
	Path   string `json:"path"   validate:"required"`
	Secret string `json:"secret,omitempty"`
}

// ScheduleTriggerConfig matches scheduler ticks against a cron expression.
type ScheduleTriggerConfig struct {
	Cron     string `json:"cron"     validate:"required"`
	Timezone string `json:"timezone,omitempty"`
}

// EventTriggerConfig matches upstream domain events by type membership and
// optional source.
type EventTriggerConfig struct {
	EventTypes []string `json:"event_types" validate:"required,min=1"`
	Source     string   `json:"source,omitempty"`
}

// Trigger is a tagged variant: Type selects which config is populated.
// Exactly one of the config pointers must be non-nil for the matching type.
type Trigger struct {
	Type     TriggerType            `json:"type" validate:"required"`
	Webhook  *WebhookTriggerConfig  `json:"webhook,omitempty"`
	Schedule *ScheduleTriggerConfig `json:"schedule,omitempty"`
	Event    *EventTriggerConfig    `json:"event,omitempty"`
}
