package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsRecord(t *testing.T) {
	analytics := Analytics{}
	now := time.Now()

	analytics.Record(ExecutionStatusSuccess, 100*time.Millisecond, now)

	assert.Equal(t, int64(1), analytics.TotalExecutions)
	assert.Equal(t, int64(1), analytics.SuccessfulExecutions)
	assert.Equal(t, int64(0), analytics.FailedExecutions)
	assert.InDelta(t, 100.0, analytics.AverageExecutionTimeMS, 0.001)
	assert.InDelta(t, 0.0, analytics.ErrorRatePercent, 0.001)
	assert.Equal(t, ExecutionStatusSuccess, analytics.LastExecutionStatus)
	require.NotNil(t, analytics.LastExecutionTime)
	assert.Equal(t, now, *analytics.LastExecutionTime)
}

func TestAnalyticsRecordRunningMean(t *testing.T) {
	analytics := Analytics{}
	now := time.Now()

	analytics.Record(ExecutionStatusSuccess, 100*time.Millisecond, now)
	analytics.Record(ExecutionStatusFailed, 300*time.Millisecond, now)

	assert.Equal(t, int64(2), analytics.TotalExecutions)
	assert.Equal(t, int64(1), analytics.FailedExecutions)
	assert.InDelta(t, 200.0, analytics.AverageExecutionTimeMS, 0.001)
	assert.InDelta(t, 50.0, analytics.ErrorRatePercent, 0.001)
	assert.Equal(t, ExecutionStatusFailed, analytics.LastExecutionStatus)
}

func TestAnalyticsRecordTimeoutCountsAsFailure(t *testing.T) {
	analytics := Analytics{}

	analytics.Record(ExecutionStatusTimeout, time.Second, time.Now())

	assert.Equal(t, int64(1), analytics.FailedExecutions)
	assert.InDelta(t, 100.0, analytics.ErrorRatePercent, 0.001)
}

func TestAnalyticsCountersAreMonotonic(t *testing.T) {
	analytics := Analytics{}

	for i := 0; i < 10; i++ {
		previous := analytics.TotalExecutions

		analytics.Record(ExecutionStatusSuccess, time.Millisecond, time.Now())

		assert.Equal(t, previous+1, analytics.TotalExecutions)
	}
}

func TestOrderedActions(t *testing.T) {
	workflow := &Workflow{
		Actions: []Action{
			{ID: "second", Order: 2},
			{ID: "first", Order: 1},
			{ID: "third", Order: 3},
		},
	}

	ordered := workflow.OrderedActions()

	require.Len(t, ordered, 3)
	assert.Equal(t, "first", ordered[0].ID)
	assert.Equal(t, "second", ordered[1].ID)
	assert.Equal(t, "third", ordered[2].ID)

	// Original ordering untouched.
	assert.Equal(t, "second", workflow.Actions[0].ID)
}
