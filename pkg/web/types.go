// Package web provides HTTP request and response types for the automation API.
package web

import (
	"github.com/ruleflow/ruleflow/pkg/models"
)

// CreateWorkflowRequest represents the request body for creating a new workflow.
type CreateWorkflowRequest struct {
	WorkspaceID string             `json:"workspace_id" validate:"required"`
	Name        string             `json:"name"         validate:"required,min=3"`
	Description string             `json:"description"`
	Trigger     models.Trigger     `json:"trigger"      validate:"required"`
	Conditions  []models.Condition `json:"conditions"`
	Actions     []models.Action    `json:"actions"      validate:"dive"`
	Frequency   string             `json:"frequency"`
	Owner       string             `json:"owner"`
}

// UpdateWorkflowRequest represents the request body for updating an existing
// workflow. All fields are optional to support partial updates.
type UpdateWorkflowRequest struct {
	Name        *string            `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string            `json:"description,omitempty"`
	Trigger     *models.Trigger    `json:"trigger,omitempty"`
	Conditions  []models.Condition `json:"conditions,omitempty"`
	Actions     []models.Action    `json:"actions,omitempty"     validate:"omitempty,dive"`
	Frequency   *string            `json:"frequency,omitempty"`
}

// IngestEventRequest represents an inbound event posted to the API for
// trigger matching.
type IngestEventRequest struct {
	WorkspaceID  string         `json:"workspace_id" validate:"required"`
	ConnectionID string         `json:"connection_id"`
	EventType    string         `json:"event_type"   validate:"required"`
	Source       string         `json:"source"       validate:"required"`
	Payload      map[string]any `json:"payload"`
}

// EvaluateVariablesRequest carries variable declarations and raw values for
// one validation pass.
type EvaluateVariablesRequest struct {
	Variables []models.Variable `json:"variables" validate:"required,dive"`
	Values    map[string]any    `json:"values"`
}

// ProcessStepsRequest carries conditional step definitions plus the runtime
// context they are evaluated against.
type ProcessStepsRequest struct {
	Steps   []models.ConditionalStep `json:"steps"   validate:"required,dive"`
	Context models.Context           `json:"context"`
}

// GenerateContentRequest carries content bindings plus the runtime context
// used for interpolation.
type GenerateContentRequest struct {
	Bindings []models.ContentBinding `json:"bindings" validate:"required,dive"`
	Context  models.Context          `json:"context"`
}
