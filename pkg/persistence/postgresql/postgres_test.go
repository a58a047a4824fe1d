package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/persistence"
	"github.com/ruleflow/ruleflow/pkg/persistence/postgresql"
)

var postgresContainer *postgres.PostgresContainer

func dropDB(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"workflows", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	require.NoError(t, db.Close())
}

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context, string) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("ruleflow_test"),
			postgres.WithUsername("ruleflow"),
			postgres.WithPassword("ruleflow"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDB(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDB(ctx, t, databaseURL)
		require.NoError(t, store.Close(ctx))
		cancel()
	})

	return store, ctx, databaseURL
}

func testWorkflow(workspaceID string) *models.Workflow {
	return &models.Workflow{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        "Overdue reminder",
		Enabled:     true,
		Trigger: models.Trigger{
			Type:  models.TriggerTypeEvent,
			Event: &models.EventTriggerConfig{EventTypes: []string{"task.overdue"}},
		},
		Actions: []models.Action{
			{ID: "a1", Type: models.ActionSendMessage, Order: 1},
		},
	}
}

func TestNewPersistence_Migrations(t *testing.T) {
	_, ctx, databaseURL := setupTestDB(t)

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, db.Close())
	}()

	var exists bool

	err = db.QueryRowContext(ctx, `SELECT EXISTS (SELECT FROM
information_schema.tables WHERE table_name = 'workflows')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "workflows table should exist")

	var version int

	err = db.QueryRowContext(ctx, "SELECT version FROM schema_migrations WHERE version = 1").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewPersistence_HealthCheck(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	assert.NoError(t, store.HealthCheck(ctx))
}

func TestNewPersistence_SaveAndRetrieveWorkflow(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	workflow := testWorkflow("ws-1")
	require.NoError(t, store.SaveWorkflow(ctx, workflow))

	fetched, err := store.WorkflowByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.ID, fetched.ID)
	assert.Equal(t, workflow.Name, fetched.Name)
	assert.True(t, fetched.Enabled)
	require.Len(t, fetched.Actions, 1)
	assert.Equal(t, models.ActionSendMessage, fetched.Actions[0].Type)
}

func TestNewPersistence_WorkflowsByWorkspace(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	require.NoError(t, store.SaveWorkflow(ctx, testWorkflow("ws-1")))
	require.NoError(t, store.SaveWorkflow(ctx, testWorkflow("ws-1")))
	require.NoError(t, store.SaveWorkflow(ctx, testWorkflow("ws-2")))

	workflows, err := store.WorkflowsByWorkspace(ctx, "ws-1")
	require.NoError(t, err)
	assert.Len(t, workflows, 2)

	all, err := store.Workflows(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNewPersistence_WorkflowNotFound(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	_, err := store.WorkflowByID(ctx, "missing")
	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestNewPersistence_DeleteWorkflow(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	workflow := testWorkflow("ws-1")
	require.NoError(t, store.SaveWorkflow(ctx, workflow))
	require.NoError(t, store.DeleteWorkflow(ctx, workflow.ID))

	err := store.DeleteWorkflow(ctx, workflow.ID)
	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestNewPersistence_UpdateAnalytics(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	workflow := testWorkflow("ws-1")
	require.NoError(t, store.SaveWorkflow(ctx, workflow))

	analytics, err := store.UpdateAnalytics(ctx, workflow.ID, models.ExecutionStatusSuccess, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), analytics.TotalExecutions)

	analytics, err = store.UpdateAnalytics(ctx, workflow.ID, models.ExecutionStatusFailed, 300*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.TotalExecutions)
	assert.Equal(t, int64(1), analytics.FailedExecutions)
	assert.InDelta(t, 200.0, analytics.AverageExecutionTimeMS, 0.001)

	fetched, err := store.WorkflowByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fetched.Analytics.TotalExecutions)
}

func TestNewPersistence_UpdateAnalyticsConcurrent(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	workflow := testWorkflow("ws-1")
	require.NoError(t, store.SaveWorkflow(ctx, workflow))

	const runs = 20

	var wg sync.WaitGroup

	for range runs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := store.UpdateAnalytics(ctx, workflow.ID, models.ExecutionStatusSuccess, 50*time.Millisecond)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	fetched, err := store.WorkflowByID(ctx, workflow.ID)
	require.NoError(t, err)
	// The row lock serializes concurrent updates; none are lost.
	assert.Equal(t, int64(runs), fetched.Analytics.TotalExecutions)
}

func TestNewPersistence_SaveWorkflowPreservesAnalyticsOnUpdate(t *testing.T) {
	store, ctx, _ := setupTestDB(t)

	workflow := testWorkflow("ws-1")
	require.NoError(t, store.SaveWorkflow(ctx, workflow))

	_, err := store.UpdateAnalytics(ctx, workflow.ID, models.ExecutionStatusSuccess, 50*time.Millisecond)
	require.NoError(t, err)

	workflow.Name = "Renamed"
	require.NoError(t, store.SaveWorkflow(ctx, workflow))

	fetched, err := store.WorkflowByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
	assert.Equal(t, int64(1), fetched.Analytics.TotalExecutions)
}
