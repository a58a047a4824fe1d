// Package postgresql provides PostgreSQL persistence for workflows and
// their analytics aggregates.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq" // postgres driver

	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/persistence"
)

type Persistence struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Persistence{
		db:     database,
		logger: logger.With("module", "postgresql_persistence"),
	}

	if err := p.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return p, nil
}

func (p *Persistence) Workflows(ctx context.Context) ([]*models.Workflow, error) {
	return p.queryWorkflows(ctx, "SELECT definition, analytics FROM workflows")
}

func (p *Persistence) WorkflowsByWorkspace(ctx context.Context, workspaceID string) ([]*models.Workflow, error) {
	return p.queryWorkflows(ctx,
		"SELECT definition, analytics FROM workflows WHERE workspace_id = $1", workspaceID)
}

func (p *Persistence) queryWorkflows(ctx context.Context, query string, args ...any) ([]*models.Workflow, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows: %w", err)
	}

	defer func() {
		if cerr := rows.Close(); cerr != nil {
			p.logger.Warn("Failed to close rows", "error", cerr)
		}
	}()

	var workflows []*models.Workflow

	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}

		workflows = append(workflows, workflow)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workflows: %w", err)
	}

	return workflows, nil
}

func (p *Persistence) WorkflowByID(ctx context.Context, id string) (*models.Workflow, error) {
	row := p.db.QueryRowContext(ctx,
		"SELECT definition, analytics FROM workflows WHERE id = $1", id)

	workflow, err := scanWorkflow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewWorkflowError("WorkflowByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, err
	}

	return workflow, nil
}

func (p *Persistence) SaveWorkflow(ctx context.Context, workflow *models.Workflow) error {
	definition, err := json.Marshal(workflow)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	analytics, err := json.Marshal(workflow.Analytics)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO workflows (id, workspace_id, enabled, definition, analytics, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			workspace_id = EXCLUDED.workspace_id,
			enabled = EXCLUDED.enabled,
			definition = EXCLUDED.definition,
			updated_at = NOW()`,
		workflow.ID, workflow.WorkspaceID, workflow.Enabled, definition, analytics)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	return nil
}

func (p *Persistence) DeleteWorkflow(ctx context.Context, id string) error {
	result, err := p.db.ExecContext(ctx, "DELETE FROM workflows WHERE id = $1", id)
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	if affected == 0 {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	return nil
}

// UpdateAnalytics folds one outcome into the aggregate inside a transaction
// with a row lock, so concurrent executions of the same workflow serialize
// on the workflow row instead of losing updates.
func (p *Persistence) UpdateAnalytics(ctx context.Context, workflowID string, status models.ExecutionStatus, duration time.Duration) (*models.Analytics, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var raw []byte

	err = tx.QueryRowContext(ctx,
		"SELECT analytics FROM workflows WHERE id = $1 FOR UPDATE", workflowID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, persistence.ErrWorkflowNotFound)
		}

		return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, err)
	}

	var analytics models.Analytics
	if err := json.Unmarshal(raw, &analytics); err != nil {
		return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, err)
	}

	analytics.Record(status, duration, time.Now())

	encoded, err := json.Marshal(&analytics)
	if err != nil {
		return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE workflows SET analytics = $1, updated_at = NOW() WHERE id = $2", encoded, workflowID)
	if err != nil {
		return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, err)
	}

	return &analytics, nil
}

func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(row scanner) (*models.Workflow, error) {
	var definition, analytics []byte

	if err := row.Scan(&definition, &analytics); err != nil {
		return nil, err
	}

	var workflow models.Workflow
	if err := json.Unmarshal(definition, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow definition: %w", err)
	}

	// Analytics live in their own column so UpdateAnalytics can mutate
	// them without rewriting the definition document.
	if err := json.Unmarshal(analytics, &workflow.Analytics); err != nil {
		return nil, fmt.Errorf("failed to decode workflow analytics: %w", err)
	}

	return &workflow, nil
}
