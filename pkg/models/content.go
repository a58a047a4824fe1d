package models

import "time"

// FormatterType enumerates the built-in value formatters for interpolation.
type FormatterType string

const (
	FormatterCapitalize FormatterType = "capitalize"
	FormatterUppercase  FormatterType = "uppercase"
	FormatterLowercase  FormatterType = "lowercase"
	FormatterCustom     FormatterType = "custom"
)

// Formatter names a formatter in a binding's chain. Name selects the
// registered custom formatter when Type is custom.
type Formatter struct {
	Type FormatterType `json:"type" validate:"required"`
	Name string        `json:"name,omitempty"`
}

// ContentCondition maps a matching variable state to literal content that is
// used verbatim instead of interpolation.
type ContentCondition struct {
	VariableID string   `json:"variable_id" validate:"required"`
	Operator   Operator `json:"operator"    validate:"required"`
	Value      any      `json:"value,omitempty"`
	Content    string   `json:"content"`
}

// ContentBinding maps a text target to a template string, its activation
// conditions and its fallback.
type ContentBinding struct {
	TargetType      string             `json:"target_type"`
	TargetID        string             `json:"target_id"        validate:"required"`
	ContentTemplate string             `json:"content_template"`
	VariableNames   []string           `json:"variable_names,omitempty"`
	Conditions      []ContentCondition `json:"conditions,omitempty"`
	FallbackContent string             `json:"fallback_content,omitempty"`
	ContentType     string             `json:"content_type,omitempty"`
	Formatters      []Formatter        `json:"formatters,omitempty"`
}

// GeneratedContent is the output of content generation for one binding.
type GeneratedContent struct {
	TargetID    string         `json:"target_id"`
	Content     string         `json:"content"`
	ContentType string         `json:"content_type,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Variables   map[string]any `json:"variables,omitempty"`
}
