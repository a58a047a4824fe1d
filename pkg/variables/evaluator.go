// Package variables validates variable values and resolves dependency rules.
package variables

import (
	"fmt"
	"log/slog"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// ValidationError is one collected rule violation. Errors are gathered into
// the result, never raised; the caller decides whether to block progress.
type ValidationError struct {
	VariableID string                    `json:"variable_id"`
	RuleType   models.ValidationRuleType `json:"rule_type,omitempty"`
	Message    string                    `json:"message"`
	Required   bool                      `json:"required,omitempty"`
}

// ResolvedDependency reports whether a dependency rule's condition holds
// against the raw input values. Applying the action is the caller's job,
// which keeps evaluation side-effect free.
type ResolvedDependency struct {
	VariableID       string                  `json:"variable_id"`
	SourceVariableID string                  `json:"source_variable_id"`
	Action           models.DependencyAction `json:"action"`
	Satisfied        bool                    `json:"satisfied"`
	ResultValue      any                     `json:"result_value,omitempty"`
}

// Result is the outcome of one evaluation pass. ValidatedValues always has
// an entry for every declared variable so callers can render partial state
// regardless of validity.
type Result struct {
	Valid                bool                 `json:"valid"`
	ValidatedValues      map[string]any       `json:"validated_values"`
	Errors               []ValidationError    `json:"errors,omitempty"`
	Warnings             []string             `json:"warnings,omitempty"`
	ResolvedDependencies []ResolvedDependency `json:"resolved_dependencies,omitempty"`
}

// CustomValidator checks a value for a custom validation rule. Returning a
// non-nil error records a rule violation with the error's message.
type CustomValidator func(value any) error

// Evaluator validates variables against their rules and resolves dependency
// chains. Safe for concurrent use once custom validators are registered.
type Evaluator struct {
	logger     *slog.Logger
	validators map[string]CustomValidator
}

func NewEvaluator(logger *slog.Logger) *Evaluator {
	return &Evaluator{
		logger:     logger.With("module", "variable_evaluator"),
		validators: make(map[string]CustomValidator),
	}
}

// RegisterValidator installs a named custom validator used by rules of type
// custom. Not safe to call concurrently with Evaluate.
func (e *Evaluator) RegisterValidator(name string, fn CustomValidator) {
	e.validators[name] = fn
}

// Evaluate validates every variable's value and resolves its dependencies.
//
// Required variables with absent or empty values record a required error and
// skip further rules for that variable. Optional absent variables take their
// declared default silently. Validation rules apply in declaration order and
// do not short-circuit: all applicable violations are collected.
func (e *Evaluator) Evaluate(vars []models.Variable, values map[string]any) Result {
	result := Result{
		ValidatedValues: make(map[string]any, len(vars)),
	}

	for _, variable := range vars {
		value, present := values[variable.ID]

		if !present || isEmpty(value) {
			if variable.Required {
				result.Errors = append(result.Errors, ValidationError{
					VariableID: variable.ID,
					Message:    fmt.Sprintf("%s is required", variable.Name),
					Required:   true,
				})
				result.ValidatedValues[variable.ID] = value

				continue
			}

			result.ValidatedValues[variable.ID] = variable.DefaultValue

			continue
		}

		result.ValidatedValues[variable.ID] = value

		if warning := e.checkType(variable, value); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		for _, rule := range variable.ValidationRules {
			if err := e.applyRule(variable, rule, value); err != nil {
				message := rule.Message
				if message == "" {
					message = err.Error()
				}

				result.Errors = append(result.Errors, ValidationError{
					VariableID: variable.ID,
					RuleType:   rule.Type,
					Message:    message,
				})
			}
		}
	}

	for _, variable := range vars {
		for _, dep := range variable.Dependencies {
			result.ResolvedDependencies = append(result.ResolvedDependencies,
				resolveDependency(variable.ID, dep, values))
		}
	}

	result.Valid = len(result.Errors) == 0

	return result
}

// resolveDependency evaluates the rule's condition against the source
// variable's current raw value, not the validated value.
func resolveDependency(variableID string, dep models.DependencyRule, values map[string]any) ResolvedDependency {
	source := values[dep.SourceVariableID]
	satisfied := models.Compare(source, dep.Condition, dep.Value)

	resolved := ResolvedDependency{
		VariableID:       variableID,
		SourceVariableID: dep.SourceVariableID,
		Action:           dep.Action,
		Satisfied:        satisfied,
	}

	if satisfied && dep.Action == models.DependencyActionSetValue {
		resolved.ResultValue = dep.SetValue
	}

	return resolved
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
