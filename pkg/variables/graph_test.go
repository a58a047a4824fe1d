package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleflow/ruleflow/pkg/models"
)

func dependsOn(sources ...string) []models.DependencyRule {
	rules := make([]models.DependencyRule, 0, len(sources))
	for _, source := range sources {
		rules = append(rules, models.DependencyRule{
			SourceVariableID: source,
			Condition:        models.OperatorExists,
			Action:           models.DependencyActionShow,
		})
	}

	return rules
}

func TestCheckCyclesAcyclic(t *testing.T) {
	vars := []models.Variable{
		{ID: "a"},
		{ID: "b", Dependencies: dependsOn("a")},
		{ID: "c", Dependencies: dependsOn("a", "b")},
	}

	assert.NoError(t, CheckCycles(vars))
}

func TestCheckCyclesDetectsDirectCycle(t *testing.T) {
	vars := []models.Variable{
		{ID: "a", Dependencies: dependsOn("b")},
		{ID: "b", Dependencies: dependsOn("a")},
	}

	err := CheckCycles(vars)
	require.Error(t, err)

	var cycleErr *CycleError

	require.ErrorAs(t, err, &cycleErr)
	assert.NotEmpty(t, cycleErr.Path)
}

func TestCheckCyclesDetectsTransitiveCycle(t *testing.T) {
	vars := []models.Variable{
		{ID: "a", Dependencies: dependsOn("c")},
		{ID: "b", Dependencies: dependsOn("a")},
		{ID: "c", Dependencies: dependsOn("b")},
	}

	err := CheckCycles(vars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic variable dependency")
}

func TestCheckCyclesSelfDependency(t *testing.T) {
	vars := []models.Variable{
		{ID: "a", Dependencies: dependsOn("a")},
	}

	assert.Error(t, CheckCycles(vars))
}

func TestCheckCyclesUndeclaredSource(t *testing.T) {
	vars := []models.Variable{
		{ID: "a", Dependencies: dependsOn("ghost")},
	}

	err := CheckCycles(vars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared variable")
}
