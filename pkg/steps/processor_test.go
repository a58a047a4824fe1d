package steps

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleflow/ruleflow/pkg/models"
)

func testProcessor() *Processor {
	return NewProcessor(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

func TestProcessEmptyConditionsAlwaysApplies(t *testing.T) {
	processor := testProcessor()

	steps := []models.ConditionalStep{
		{ID: "cs-1", StepID: "step-1", Action: models.StepActionShow},
	}

	processed := processor.Process(steps, &models.Context{})

	require.Len(t, processed, 1)
	assert.Equal(t, "step-1", processed[0].StepID)
	assert.Equal(t, models.StepActionShow, processed[0].Action)
	assert.NotEmpty(t, processed[0].Reasoning)
}

func TestProcessAndRequiresAllConditions(t *testing.T) {
	processor := testProcessor()

	steps := []models.ConditionalStep{
		{
			ID:     "cs-1",
			StepID: "step-1",
			Action: models.StepActionRequire,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionVariable, Field: "severity", Operator: models.OperatorEquals, Value: "high"},
				{Type: models.StepConditionUserRole, Operator: models.OperatorEquals, Value: "admin"},
			},
			LogicalOperator: models.LogicalAnd,
		},
	}

	ctx := &models.Context{
		Variables:   map[string]any{"severity": "high"},
		UserProfile: models.UserProfile{Role: "admin"},
	}
	assert.Len(t, processor.Process(steps, ctx), 1)

	ctx.UserProfile.Role = "viewer"
	assert.Empty(t, processor.Process(steps, ctx))
}

func TestProcessOrRequiresAnyCondition(t *testing.T) {
	processor := testProcessor()

	steps := []models.ConditionalStep{
		{
			ID:     "cs-1",
			StepID: "step-1",
			Action: models.StepActionHide,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionVariable, Field: "mode", Operator: models.OperatorEquals, Value: "quick"},
				{Type: models.StepConditionDeviceType, Operator: models.OperatorEquals, Value: "mobile"},
			},
			LogicalOperator: models.LogicalOr,
		},
	}

	ctx := &models.Context{
		Variables:   map[string]any{"mode": "full"},
		Environment: models.Environment{DeviceType: "mobile"},
	}
	assert.Len(t, processor.Process(steps, ctx), 1)

	ctx.Environment.DeviceType = "desktop"
	assert.Empty(t, processor.Process(steps, ctx))
}

func TestProcessPreviousStepConditions(t *testing.T) {
	processor := testProcessor()

	exists := []models.ConditionalStep{
		{
			ID:     "cs-1",
			StepID: "step-2",
			Action: models.StepActionShow,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionPreviousStep, Field: "step-1", Operator: models.OperatorExists},
			},
		},
	}

	ctx := &models.Context{CompletedSteps: []string{"step-1"}}
	assert.Len(t, processor.Process(exists, ctx), 1)
	assert.Empty(t, processor.Process(exists, &models.Context{}))

	resultCheck := []models.ConditionalStep{
		{
			ID:     "cs-2",
			StepID: "step-3",
			Action: models.StepActionShow,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionPreviousStep, Field: "step-1", Operator: models.OperatorEquals, Value: "pass"},
			},
		},
	}

	ctx = &models.Context{
		CompletedSteps: []string{"step-1"},
		StepResults:    map[string]any{"step-1": "pass"},
	}
	assert.Len(t, processor.Process(resultCheck, ctx), 1)

	// Result comparison on an uncompleted step fails closed.
	ctx = &models.Context{StepResults: map[string]any{"step-1": "pass"}}
	assert.Empty(t, processor.Process(resultCheck, ctx))
}

func TestProcessTimeCondition(t *testing.T) {
	processor := testProcessor()

	steps := []models.ConditionalStep{
		{
			ID:     "cs-1",
			StepID: "step-1",
			Action: models.StepActionShow,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionTime, Operator: models.OperatorGreaterThan, Value: "09:00"},
			},
		},
	}

	morning := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	afternoon := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	assert.Empty(t, processor.Process(steps, &models.Context{Now: morning}))
	assert.Len(t, processor.Process(steps, &models.Context{Now: afternoon}), 1)
}

func TestProcessTimeWindow(t *testing.T) {
	processor := testProcessor()

	businessHours := []models.ConditionalStep{
		{
			ID:              "cs-1",
			StepID:          "step-1",
			Action:          models.StepActionShow,
			LogicalOperator: models.LogicalAnd,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionTime, Operator: models.OperatorGreaterThan, Value: "09:00"},
				{Type: models.StepConditionTime, Operator: models.OperatorLessThan, Value: "17:00"},
			},
		},
	}

	inside := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	before := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	after := time.Date(2025, 3, 10, 18, 15, 0, 0, time.UTC)

	assert.Len(t, processor.Process(businessHours, &models.Context{Now: inside}), 1)
	assert.Empty(t, processor.Process(businessHours, &models.Context{Now: before}))
	assert.Empty(t, processor.Process(businessHours, &models.Context{Now: after}))
}

func TestProcessCustomPredicate(t *testing.T) {
	processor := testProcessor()
	processor.RegisterPredicate("weekend", func(ctx *models.Context) bool {
		day := ctx.Now.Weekday()

		return day == time.Saturday || day == time.Sunday
	})

	steps := []models.ConditionalStep{
		{
			ID:     "cs-1",
			StepID: "step-1",
			Action: models.StepActionSkip,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionCustom, Field: "weekend", Operator: models.OperatorExists},
			},
		},
	}

	saturday := time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	assert.Len(t, processor.Process(steps, &models.Context{Now: saturday}), 1)
	assert.Empty(t, processor.Process(steps, &models.Context{Now: monday}))
}

func TestProcessUnregisteredPredicateFailsClosed(t *testing.T) {
	processor := testProcessor()

	steps := []models.ConditionalStep{
		{
			ID:     "cs-1",
			StepID: "step-1",
			Action: models.StepActionShow,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionCustom, Field: "missing", Operator: models.OperatorExists},
			},
		},
	}

	assert.Empty(t, processor.Process(steps, &models.Context{}))
}

func TestProcessUnknownConditionTypeFailsClosed(t *testing.T) {
	processor := testProcessor()

	steps := []models.ConditionalStep{
		{
			ID:     "cs-1",
			StepID: "step-1",
			Action: models.StepActionShow,
			Conditions: []models.StepCondition{
				{Type: models.StepConditionType("weather"), Operator: models.OperatorEquals, Value: "sunny"},
			},
		},
	}

	assert.Empty(t, processor.Process(steps, &models.Context{}))
}

func TestProcessModifyCarriesModifications(t *testing.T) {
	processor := testProcessor()

	steps := []models.ConditionalStep{
		{
			ID:            "cs-1",
			StepID:        "step-1",
			Action:        models.StepActionModify,
			Modifications: map[string]any{"title": "Updated title"},
		},
	}

	processed := processor.Process(steps, &models.Context{})

	require.Len(t, processed, 1)
	assert.Equal(t, "Updated title", processed[0].Modifications["title"])
}
