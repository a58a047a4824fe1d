// Package models defines the core domain models for the rule and automation engine.
package models

// VariableType enumerates the supported input slot types.
type VariableType string

const (
	VariableTypeText         VariableType = "text"
	VariableTypeNumber       VariableType = "number"
	VariableTypeBoolean      VariableType = "boolean"
	VariableTypeSingleSelect VariableType = "single-select"
	VariableTypeMultiSelect  VariableType = "multi-select"
	VariableTypeDate         VariableType = "date"
	VariableTypeTime         VariableType = "time"
	VariableTypeFile         VariableType = "file-reference"
	VariableTypeURL          VariableType = "url"
)

// ValidationRuleType enumerates the supported validation rule kinds.
type ValidationRuleType string

const (
	RuleMinLength ValidationRuleType = "min-length"
	RuleMaxLength ValidationRuleType = "max-length"
	RulePattern   ValidationRuleType = "pattern"
	RuleMin       ValidationRuleType = "min"
	RuleMax       ValidationRuleType = "max"
	RuleCustom    ValidationRuleType = "custom"
)

// ValidationRule constrains a variable value. Value holds the rule parameter
// (length bound, numeric bound, regular expression, or custom validator name).
type ValidationRule struct {
	Type    ValidationRuleType `json:"type"    validate:"required"`
	Value   any                `json:"value"`
	Message string             `json:"message"`
}

// VariableOption is a selectable option for single-select and multi-select variables.
type VariableOption struct {
	Value string `json:"value" validate:"required"`
	Label string `json:"label"`
}

// Variable is a named, typed input slot declared at template-authoring time.
// Values are supplied per evaluation context and never mutated after resolution.
type Variable struct {
	ID              string           `json:"id"               validate:"required"`
	Name            string           `json:"name"             validate:"required"`
	Type            VariableType     `json:"type"             validate:"required"`
	Required        bool             `json:"required"`
	DefaultValue    any              `json:"default_value,omitempty"`
	ValidationRules []ValidationRule `json:"validation_rules,omitempty"`
	Options         []VariableOption `json:"options,omitempty"`
	Dependencies    []DependencyRule `json:"dependencies,omitempty"`
	Group           string           `json:"group,omitempty"`
}

// DependencyAction is the behavior a satisfied dependency rule requests.
type DependencyAction string

const (
	DependencyActionShow     DependencyAction = "show"
	DependencyActionHide     DependencyAction = "hide"
	DependencyActionRequire  DependencyAction = "require"
	DependencyActionDisable  DependencyAction = "disable"
	DependencyActionSetValue DependencyAction = "set-value"
)

// DependencyRule binds one variable's behavior to another variable's value.
// The evaluator only reports whether the rule is satisfied; applying the
// action is the caller's responsibility.
type DependencyRule struct {
	SourceVariableID string           `json:"source_variable_id" validate:"required"`
	Condition        Operator         `json:"condition"          validate:"required"`
	Value            any              `json:"value,omitempty"`
	Action           DependencyAction `json:"action"             validate:"required"`
	// SetValue is the value to apply when Action is set-value.
	SetValue any `json:"set_value,omitempty"`
}
