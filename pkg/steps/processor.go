// Package steps resolves step-level show/hide/require/skip/modify decisions
// from conditional step rules.
package steps

import (
	"fmt"
	"log/slog"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// CustomPredicate evaluates a caller-defined condition over the whole
// Context. Registered by name and referenced from conditions of type custom
// via their Field.
type CustomPredicate func(ctx *models.Context) bool

// Processor evaluates conditional steps against a Context. Evaluation is
// synchronous and purely in-memory.
type Processor struct {
	logger     *slog.Logger
	predicates map[string]CustomPredicate
}

func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{
		logger:     logger.With("module", "step_processor"),
		predicates: make(map[string]CustomPredicate),
	}
}

// RegisterPredicate installs a named custom predicate. Not safe to call
// concurrently with Process.
func (p *Processor) RegisterPredicate(name string, fn CustomPredicate) {
	p.predicates[name] = fn
}

// Process evaluates each conditional step's condition list and returns a
// ProcessedStep for every step whose combined result is true. An empty
// condition list is vacuously true. The output is not deduplicated; callers
// that care about conflicts apply ResolveConflicts.
func (p *Processor) Process(conditionalSteps []models.ConditionalStep, ctx *models.Context) []models.ProcessedStep {
	processed := make([]models.ProcessedStep, 0, len(conditionalSteps))

	for _, step := range conditionalSteps {
		if !p.evaluateStep(step, ctx) {
			continue
		}

		processed = append(processed, models.ProcessedStep{
			StepID:        step.StepID,
			Action:        step.Action,
			Modifications: step.Modifications,
			Reasoning:     reasoning(step),
			Priority:      step.Priority,
		})
	}

	return processed
}

func (p *Processor) evaluateStep(step models.ConditionalStep, ctx *models.Context) bool {
	if len(step.Conditions) == 0 {
		return true
	}

	if step.LogicalOperator == models.LogicalOr {
		for _, condition := range step.Conditions {
			if p.evaluateCondition(condition, ctx) {
				return true
			}
		}

		return false
	}

	for _, condition := range step.Conditions {
		if !p.evaluateCondition(condition, ctx) {
			return false
		}
	}

	return true
}

func reasoning(step models.ConditionalStep) string {
	if len(step.Conditions) == 0 {
		return "no conditions, step applies unconditionally"
	}

	operator := step.LogicalOperator
	if operator == "" {
		operator = models.LogicalAnd
	}

	return fmt.Sprintf("%d condition(s) satisfied using %s", len(step.Conditions), operator)
}
