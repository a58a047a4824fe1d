package file

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/persistence"
)

func sampleWorkflow(id, workspaceID string) *models.Workflow {
	return &models.Workflow{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        "Sample workflow",
		Enabled:     true,
		Trigger: models.Trigger{
			Type: models.TriggerTypeEvent,
			Event: &models.EventTriggerConfig{
				EventTypes: []string{"task.completed"},
			},
		},
		Actions: []models.Action{
			{ID: "a1", Type: models.ActionSendMessage, Order: 1},
		},
	}
}

func TestSaveAndFetchWorkflow(t *testing.T) {
	ctx := context.Background()
	store := NewPersistence(t.TempDir())

	saved := sampleWorkflow("wf-1", "ws-1")
	require.NoError(t, store.SaveWorkflow(ctx, saved))

	fetched, err := store.WorkflowByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "wf-1", fetched.ID)
	assert.Equal(t, "Sample workflow", fetched.Name)
	assert.Equal(t, models.TriggerTypeEvent, fetched.Trigger.Type)
	require.NotNil(t, fetched.Trigger.Event)
	assert.Equal(t, []string{"task.completed"}, fetched.Trigger.Event.EventTypes)
}

func TestWorkflowByIDNotFound(t *testing.T) {
	store := NewPersistence(t.TempDir())

	_, err := store.WorkflowByID(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowsEmptyDirectory(t *testing.T) {
	store := NewPersistence(t.TempDir())

	workflows, err := store.Workflows(context.Background())

	require.NoError(t, err)
	assert.Empty(t, workflows)
}

func TestWorkflowsByWorkspace(t *testing.T) {
	ctx := context.Background()
	store := NewPersistence(t.TempDir())

	require.NoError(t, store.SaveWorkflow(ctx, sampleWorkflow("wf-1", "ws-1")))
	require.NoError(t, store.SaveWorkflow(ctx, sampleWorkflow("wf-2", "ws-1")))
	require.NoError(t, store.SaveWorkflow(ctx, sampleWorkflow("wf-3", "ws-2")))

	workflows, err := store.WorkflowsByWorkspace(ctx, "ws-1")

	require.NoError(t, err)
	assert.Len(t, workflows, 2)
}

func TestDeleteWorkflow(t *testing.T) {
	ctx := context.Background()
	store := NewPersistence(t.TempDir())

	require.NoError(t, store.SaveWorkflow(ctx, sampleWorkflow("wf-1", "ws-1")))
	require.NoError(t, store.DeleteWorkflow(ctx, "wf-1"))

	_, err := store.WorkflowByID(ctx, "wf-1")
	assert.True(t, persistence.IsWorkflowNotFound(err))

	err = store.DeleteWorkflow(ctx, "wf-1")
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestUpdateAnalytics(t *testing.T) {
	ctx := context.Background()
	store := NewPersistence(t.TempDir())

	require.NoError(t, store.SaveWorkflow(ctx, sampleWorkflow("wf-1", "ws-1")))

	analytics, err := store.UpdateAnalytics(ctx, "wf-1", models.ExecutionStatusSuccess, 120*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), analytics.TotalExecutions)

	analytics, err = store.UpdateAnalytics(ctx, "wf-1", models.ExecutionStatusFailed, 180*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.TotalExecutions)
	assert.Equal(t, int64(1), analytics.FailedExecutions)
	assert.InDelta(t, 150.0, analytics.AverageExecutionTimeMS, 0.001)
	assert.InDelta(t, 50.0, analytics.ErrorRatePercent, 0.001)

	// Aggregate survives a reload from disk.
	fetched, err := store.WorkflowByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), fetched.Analytics.TotalExecutions)
}

func TestUpdateAnalyticsConcurrentWritesLoseNothing(t *testing.T) {
	ctx := context.Background()
	store := NewPersistence(t.TempDir())

	require.NoError(t, store.SaveWorkflow(ctx, sampleWorkflow("wf-1", "ws-1")))

	const writers = 20

	done := make(chan error, writers)

	for i := 0; i < writers; i++ {
		go func() {
			_, err := store.UpdateAnalytics(ctx, "wf-1", models.ExecutionStatusSuccess, time.Millisecond)
			done <- err
		}()
	}

	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}

	fetched, err := store.WorkflowByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, int64(writers), fetched.Analytics.TotalExecutions)
}

func TestNewPersistenceStripsFileScheme(t *testing.T) {
	dir := t.TempDir()
	store := NewPersistence("file://" + dir)

	assert.NoError(t, store.HealthCheck(context.Background()))
}
