// Package persistence provides the storage abstraction for workflow
// definitions and their analytics aggregates.
package persistence

import (
	"context"
	"time"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// Persistence stores workflows and analytics. UpdateAnalytics must be an
// atomic read-modify-write per workflow aggregate so concurrent executions
// of the same workflow cannot lose counter updates.
type Persistence interface {
	Workflows(ctx context.Context) ([]*models.Workflow, error)
	WorkflowsByWorkspace(ctx context.Context, workspaceID string) ([]*models.Workflow, error)
	WorkflowByID(ctx context.Context, id string) (*models.Workflow, error)
	SaveWorkflow(ctx context.Context, workflow *models.Workflow) error
	DeleteWorkflow(ctx context.Context, id string) error

	// UpdateAnalytics folds one execution outcome into the workflow's
	// aggregate and returns the updated aggregate.
	UpdateAnalytics(ctx context.Context, workflowID string, status models.ExecutionStatus, duration time.Duration) (*models.Analytics, error)

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
