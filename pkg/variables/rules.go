package variables

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ruleflow/ruleflow/pkg/models"
)

func (e *Evaluator) applyRule(variable models.Variable, rule models.ValidationRule, value any) error {
	switch rule.Type {
	case models.RuleMinLength:
		bound, ok := toInt(rule.Value)
		if !ok {
			return fmt.Errorf("min-length rule on %s has non-numeric bound", variable.ID)
		}

		if len(stringValue(value)) < bound {
			return fmt.Errorf("%s must be at least %d characters", variable.Name, bound)
		}
	case models.RuleMaxLength:
		bound, ok := toInt(rule.Value)
		if !ok {
			return fmt.Errorf("max-length rule on %s has non-numeric bound", variable.ID)
		}

		if len(stringValue(value)) > bound {
			return fmt.Errorf("%s must be at most %d characters", variable.Name, bound)
		}
	case models.RulePattern:
		pattern, ok := rule.Value.(string)
		if !ok {
			return fmt.Errorf("pattern rule on %s has non-string pattern", variable.ID)
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("pattern rule on %s is invalid: %w", variable.ID, err)
		}

		if !re.MatchString(stringValue(value)) {
			return fmt.Errorf("%s does not match the required format", variable.Name)
		}
	case models.RuleMin:
		bound, bok := toNumber(rule.Value)
		actual, aok := toNumber(value)

		if !bok || !aok {
			return fmt.Errorf("min rule on %s requires numeric values", variable.ID)
		}

		if actual < bound {
			return fmt.Errorf("%s must be at least %v", variable.Name, rule.Value)
		}
	case models.RuleMax:
		bound, bok := toNumber(rule.Value)
		actual, aok := toNumber(value)

		if !bok || !aok {
			return fmt.Errorf("max rule on %s requires numeric values", variable.ID)
		}

		if actual > bound {
			return fmt.Errorf("%s must be at most %v", variable.Name, rule.Value)
		}
	case models.RuleCustom:
		name, _ := rule.Value.(string)

		fn, registered := e.validators[name]
		if !registered {
			e.logger.Warn("Custom validator not registered", "validator", name, "variable_id", variable.ID)

			return fmt.Errorf("custom validator %q is not registered", name)
		}

		if err := fn(value); err != nil {
			return err
		}
	default:
		return errors.New("unknown validation rule type: " + string(rule.Type))
	}

	return nil
}

// checkType reports a warning when a value's Go type does not match the
// declared variable type. Mismatches warn rather than error because the raw
// value may still stringify usefully downstream.
func (e *Evaluator) checkType(variable models.Variable, value any) string {
	switch variable.Type {
	case models.VariableTypeNumber:
		if _, ok := toNumber(value); !ok {
			return fmt.Sprintf("%s expects a number, got %T", variable.ID, value)
		}
	case models.VariableTypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("%s expects a boolean, got %T", variable.ID, value)
		}
	case models.VariableTypeMultiSelect:
		switch value.(type) {
		case []any, []string:
		default:
			return fmt.Sprintf("%s expects a list of selections, got %T", variable.ID, value)
		}
	case models.VariableTypeSingleSelect:
		if !optionAllowed(variable.Options, value) {
			return fmt.Sprintf("%s value %v is not a declared option", variable.ID, value)
		}
	}

	return ""
}

func optionAllowed(options []models.VariableOption, value any) bool {
	if len(options) == 0 {
		return true
	}

	str := stringValue(value)
	for _, option := range options {
		if option.Value == str {
			return true
		}
	}

	return false
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", value)
}

func toInt(value any) (int, bool) {
	f, ok := toNumber(value)

	return int(f), ok
}

func toNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
