// Package redis provides Redis-backed persistence for workflows. Analytics
// updates use WATCH-based optimistic transactions so concurrent executions
// of the same workflow never lose counter updates.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/persistence"
)

const (
	workflowKeyPrefix = "ruleflow:workflow:"
	workflowIndexKey  = "ruleflow:workflows"

	// analyticsRetries bounds the optimistic-transaction retry loop.
	analyticsRetries = 10
)

type Persistence struct {
	client goredis.UniversalClient
}

func NewPersistence(url string) (*Persistence, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return &Persistence{client: goredis.NewClient(opts)}, nil
}

// NewPersistenceWithClient wraps an existing client, used by tests.
func NewPersistenceWithClient(client goredis.UniversalClient) *Persistence {
	return &Persistence{client: client}
}

func workflowKey(id string) string {
	return workflowKeyPrefix + id
}

func (p *Persistence) Workflows(ctx context.Context) ([]*models.Workflow, error) {
	ids, err := p.client.SMembers(ctx, workflowIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow ids: %w", err)
	}

	workflows := make([]*models.Workflow, 0, len(ids))

	for _, id := range ids {
		workflow, err := p.WorkflowByID(ctx, id)
		if err != nil {
			if persistence.IsWorkflowNotFound(err) {
				continue // index can lag a delete
			}

			return nil, err
		}

		workflows = append(workflows, workflow)
	}

	return workflows, nil
}

func (p *Persistence) WorkflowsByWorkspace(ctx context.Context, workspaceID string) ([]*models.Workflow, error) {
	all, err := p.Workflows(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Workflow, 0, len(all))
	for _, workflow := range all {
		if workflow.WorkspaceID == workspaceID {
			filtered = append(filtered, workflow)
		}
	}

	return filtered, nil
}

func (p *Persistence) WorkflowByID(ctx context.Context, id string) (*models.Workflow, error) {
	data, err := p.client.Get(ctx, workflowKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, persistence.NewWorkflowError("WorkflowByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, fmt.Errorf("failed to get workflow %s: %w", id, err)
	}

	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow %s: %w", id, err)
	}

	return &workflow, nil
}

func (p *Persistence) SaveWorkflow(ctx context.Context, workflow *models.Workflow) error {
	data, err := json.Marshal(workflow)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	_, err = p.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, workflowKey(workflow.ID), data, 0)
		pipe.SAdd(ctx, workflowIndexKey, workflow.ID)

		return nil
	})
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	return nil
}

func (p *Persistence) DeleteWorkflow(ctx context.Context, id string) error {
	deleted, err := p.client.Del(ctx, workflowKey(id)).Result()
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	if deleted == 0 {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	if err := p.client.SRem(ctx, workflowIndexKey, id).Err(); err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	return nil
}

// UpdateAnalytics performs an optimistic read-modify-write on the workflow
// document: WATCH the key, fold the outcome into the aggregate, write inside
// a transaction. A concurrent writer aborts the transaction and the update
// retries against the fresh state.
func (p *Persistence) UpdateAnalytics(ctx context.Context, workflowID string, status models.ExecutionStatus, duration time.Duration) (*models.Analytics, error) {
	key := workflowKey(workflowID)

	var updated models.Analytics

	transform := func(tx *goredis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				return persistence.ErrWorkflowNotFound
			}

			return err
		}

		var workflow models.Workflow
		if err := json.Unmarshal(data, &workflow); err != nil {
			return err
		}

		workflow.Analytics.Record(status, duration, time.Now())
		updated = workflow.Analytics

		encoded, err := json.Marshal(&workflow)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)

			return nil
		})

		return err
	}

	for attempt := 0; attempt < analyticsRetries; attempt++ {
		err := p.client.Watch(ctx, transform, key)
		if err == nil {
			return &updated, nil
		}

		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}

		return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID, err)
	}

	return nil, persistence.NewWorkflowError("UpdateAnalytics", workflowID,
		errors.New("analytics update kept conflicting with concurrent writers"))
}

func (p *Persistence) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *Persistence) Close(_ context.Context) error {
	return p.client.Close()
}
