// Package events defines the inbound event envelope and engine lifecycle events.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Bus topic for engine events.
const Topic = "ruleflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Inbound event routed to workflow trigger matching.
	EventReceivedEvent EventType = "event.received"

	// Workflow run lifecycle.
	WorkflowTriggeredEvent EventType = "workflow.triggered"
	WorkflowFinishedEvent  EventType = "workflow.finished"
	WorkflowFailedEvent    EventType = "workflow.failed"
)

// Event is the inbound envelope consumed by the engine: a webhook delivery,
// a scheduler tick or an upstream domain event.
type Event struct {
	ID           string         `json:"id"`
	WorkspaceID  string         `json:"workspace_id"`
	ConnectionID string         `json:"connection_id,omitempty"`
	EventType    string         `json:"event_type"`
	Source       string         `json:"source"`
	Payload      map[string]any `json:"payload,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id,omitempty"`
	WorkerID   string         `json:"worker_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
	}
}

// EventReceived wraps an inbound Event for transport over the bus.
type EventReceived struct {
	BaseEvent

	Event Event `json:"event"`
}

func (e EventReceived) GetType() EventType {
	return EventReceivedEvent
}

type WorkflowTriggered struct {
	BaseEvent

	ExecutionID string         `json:"execution_id"`
	EventID     string         `json:"event_id"`
	Payload     map[string]any `json:"payload,omitempty"`
}

func (w WorkflowTriggered) GetType() EventType {
	return WorkflowTriggeredEvent
}

type WorkflowFinished struct {
	BaseEvent

	ExecutionID string        `json:"execution_id"`
	ActionsRun  int           `json:"actions_run"`
	Duration    time.Duration `json:"duration"`
}

func (w WorkflowFinished) GetType() EventType {
	return WorkflowFinishedEvent
}

type WorkflowFailed struct {
	BaseEvent

	ExecutionID  string        `json:"execution_id"`
	FailedAction string        `json:"failed_action,omitempty"`
	Error        string        `json:"error"`
	Duration     time.Duration `json:"duration"`
}

func (w WorkflowFailed) GetType() EventType {
	return WorkflowFailedEvent
}
