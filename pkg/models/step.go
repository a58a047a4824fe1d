package models

// StepConditionType selects what part of the Context a step condition reads.
type StepConditionType string

const (
	StepConditionVariable     StepConditionType = "variable"
	StepConditionPreviousStep StepConditionType = "previous-step"
	StepConditionUserRole     StepConditionType = "user-role"
	StepConditionDeviceType   StepConditionType = "device-type"
	StepConditionTime         StepConditionType = "time"
	StepConditionLocation     StepConditionType = "location"
	StepConditionCustom       StepConditionType = "custom"
)

// LogicalOperator combines the per-condition booleans of a conditional step.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

// StepCondition is one predicate evaluated against a Context.
type StepCondition struct {
	Type     StepConditionType `json:"type"     validate:"required"`
	Field    string            `json:"field,omitempty"`
	Operator Operator          `json:"operator" validate:"required"`
	Value    any               `json:"value,omitempty"`
}

// StepAction is what a satisfied conditional step does to its target step.
type StepAction string

const (
	StepActionShow    StepAction = "show"
	StepActionHide    StepAction = "hide"
	StepActionRequire StepAction = "require"
	StepActionSkip    StepAction = "skip"
	StepActionModify  StepAction = "modify"
)

// ConditionalStep is a rule that shows, hides, requires, skips or modifies a
// checklist step based on its condition list. Priority breaks ties when
// several conditional steps target the same step with the same action.
type ConditionalStep struct {
	ID              string          `json:"id"               validate:"required"`
	StepID          string          `json:"step_id"          validate:"required"`
	Conditions      []StepCondition `json:"conditions"`
	LogicalOperator LogicalOperator `json:"logical_operator"`
	Action          StepAction      `json:"action"           validate:"required"`
	Modifications   map[string]any  `json:"modifications,omitempty"`
	Priority        int             `json:"priority"`
}

// ProcessedStep is the evaluator's decision for one satisfied conditional
// step. Reasoning is diagnostic only and never used for control flow.
type ProcessedStep struct {
	StepID        string         `json:"step_id"`
	Action        StepAction     `json:"action"`
	Modifications map[string]any `json:"modifications,omitempty"`
	Reasoning     string         `json:"reasoning"`
	Priority      int            `json:"priority"`
}
