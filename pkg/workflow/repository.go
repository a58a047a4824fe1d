package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/persistence"
)

// Repository wraps persistence with the lifecycle rules for workflow
// definitions: generated IDs, timestamps, and the disabled-by-default rule
// for new workflows.
type Repository struct {
	persistence persistence.Persistence
}

func NewRepository(store persistence.Persistence) *Repository {
	return &Repository{
		persistence: store,
	}
}

func (r *Repository) HealthCheck(ctx context.Context) (string, bool) {
	if r.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := r.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func (r *Repository) FetchAll(ctx context.Context) ([]*models.Workflow, error) {
	workflows, err := r.persistence.Workflows(ctx)
	if err != nil {
		return make([]*models.Workflow, 0), err
	}

	return workflows, nil
}

func (r *Repository) FetchByWorkspace(ctx context.Context, workspaceID string) ([]*models.Workflow, error) {
	workflows, err := r.persistence.WorkflowsByWorkspace(ctx, workspaceID)
	if err != nil {
		return make([]*models.Workflow, 0), err
	}

	return workflows, nil
}

func (r *Repository) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := r.persistence.WorkflowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, persistence.ErrWorkflowNotFound
	}

	return workflow, nil
}

// Create persists a new workflow. New workflows start disabled so a
// half-configured definition cannot fire on live events.
func (r *Repository) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}

	now := time.Now()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now
	workflow.Enabled = false
	workflow.Analytics = models.Analytics{}

	err := r.persistence.SaveWorkflow(ctx, workflow)
	if err != nil {
		return nil, err
	}

	return workflow, nil
}

// Update replaces the stored definition, preserving creation time and the
// accumulated analytics aggregate.
func (r *Repository) Update(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error) {
	existing, err := r.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workflow.ID = id
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now()
	workflow.Analytics = existing.Analytics

	err = r.persistence.SaveWorkflow(ctx, workflow)
	if err != nil {
		return nil, err
	}

	return workflow, nil
}

// SetEnabled flips the enabled flag without touching the rest of the
// definition.
func (r *Repository) SetEnabled(ctx context.Context, id string, enabled bool) (*models.Workflow, error) {
	existing, err := r.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Enabled = enabled
	existing.UpdatedAt = time.Now()

	err = r.persistence.SaveWorkflow(ctx, existing)
	if err != nil {
		return nil, err
	}

	return existing, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	return r.persistence.DeleteWorkflow(ctx, id)
}

// FetchEnabled returns only the workflows eligible for trigger matching.
func (r *Repository) FetchEnabled(ctx context.Context) ([]*models.Workflow, error) {
	allWorkflows, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	enabled := make([]*models.Workflow, 0)

	for _, workflow := range allWorkflows {
		if workflow.Enabled {
			enabled = append(enabled, workflow)
		}
	}

	return enabled, nil
}
