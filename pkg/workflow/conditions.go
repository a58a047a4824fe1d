package workflow

import (
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/template"
)

// evaluateChain folds the condition chain left-to-right against the event
// payload. Each condition's own LogicOperator joins it to the NEXT
// condition, so the chain reads c1 OP1 c2 OP2 c3 with strictly sequential,
// non-associative evaluation and no grouping. Workflow authors depend on
// this order; do not replace it with conventional precedence.
//
// An empty chain always passes.
func evaluateChain(conditions []models.Condition, payload map[string]any) bool {
	if len(conditions) == 0 {
		return true
	}

	result := evaluateCondition(conditions[0], payload)

	for i := 1; i < len(conditions); i++ {
		next := evaluateCondition(conditions[i], payload)

		switch conditions[i-1].LogicOperator {
		case models.LogicOr:
			result = result || next
		case models.LogicAnd:
			result = result && next
		default:
			result = result && next
		}
	}

	return result
}

// evaluateCondition resolves one condition's field via dotted-path lookup.
// Missing fields and malformed comparisons fail closed.
func evaluateCondition(condition models.Condition, payload map[string]any) bool {
	value, found := template.Lookup(payload, condition.Field)

	if condition.Operator == models.OperatorExists {
		return found && models.Compare(value, models.OperatorExists, nil)
	}

	if !found {
		return false
	}

	return models.Compare(value, condition.Operator, condition.Value)
}
