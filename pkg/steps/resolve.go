package steps

import "github.com/ruleflow/ruleflow/pkg/models"

// ResolveConflicts collapses processed steps that target the same step with
// the same action down to a single winner: highest priority wins, and on
// equal priority the last-declared entry wins. Relative order of the
// surviving entries follows their first appearance in the input.
//
// Callers that want every applicable entry (e.g. to display all reasons)
// can use the Process output directly; resolution is opt-in.
func ResolveConflicts(processed []models.ProcessedStep) []models.ProcessedStep {
	type key struct {
		stepID string
		action string
	}

	winners := make(map[key]int, len(processed))
	order := make([]key, 0, len(processed))

	for i, step := range processed {
		k := key{stepID: step.StepID, action: string(step.Action)}

		current, seen := winners[k]
		if !seen {
			winners[k] = i
			order = append(order, k)

			continue
		}

		// >= makes the later declaration win ties.
		if step.Priority >= processed[current].Priority {
			winners[k] = i
		}
	}

	resolved := make([]models.ProcessedStep, 0, len(order))
	for _, k := range order {
		resolved = append(resolved, processed[winners[k]])
	}

	return resolved
}
