package steps

import (
	"time"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// evaluateCondition resolves one step condition against the Context.
// Unrecognized condition types and malformed comparisons fail closed:
// the condition is treated as not satisfied, never as an error.
func (p *Processor) evaluateCondition(condition models.StepCondition, ctx *models.Context) bool {
	switch condition.Type {
	case models.StepConditionVariable:
		return models.Compare(ctx.Variable(condition.Field), condition.Operator, condition.Value)

	case models.StepConditionPreviousStep:
		completed := ctx.StepCompleted(condition.Field)

		// exists asks "did this step complete"; other operators compare
		// the recorded step result.
		if condition.Operator == models.OperatorExists {
			return completed
		}

		if !completed {
			return false
		}

		var result any
		if ctx.StepResults != nil {
			result = ctx.StepResults[condition.Field]
		}

		return models.Compare(result, condition.Operator, condition.Value)

	case models.StepConditionUserRole:
		return models.Compare(ctx.UserProfile.Role, condition.Operator, condition.Value)

	case models.StepConditionDeviceType:
		return models.Compare(ctx.Environment.DeviceType, condition.Operator, condition.Value)

	case models.StepConditionTime:
		now := ctx.Now
		if now.IsZero() {
			now = time.Now()
		}

		return models.Compare(now.Format("15:04"), condition.Operator, condition.Value)

	case models.StepConditionLocation:
		return models.Compare(ctx.Environment.Location, condition.Operator, condition.Value)

	case models.StepConditionCustom:
		fn, registered := p.predicates[condition.Field]
		if !registered {
			p.logger.Warn("Custom predicate not registered, failing closed", "predicate", condition.Field)

			return false
		}

		return fn(ctx)

	default:
		p.logger.Warn("Unknown step condition type, failing closed", "type", condition.Type)

		return false
	}
}
