// Package record executes create-record and update-record actions against a
// host-supplied record store.
package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// Store mutates records in the product's managed data store. The engine
// only emits mutation requests; persistence semantics belong to the host.
type Store interface {
	CreateRecord(ctx context.Context, collection string, fields map[string]any) (string, error)
	UpdateRecord(ctx context.Context, collection, recordID string, fields map[string]any) error
}

type Executor struct {
	store Store
}

func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

func (e *Executor) Execute(ctx context.Context, action models.Action, _ map[string]any, logger *slog.Logger) (any, error) {
	if e.store == nil {
		return nil, errors.New("no record store configured")
	}

	collection, _ := action.Configuration["collection"].(string)
	if collection == "" {
		return nil, fmt.Errorf("record action %s has no collection", action.ID)
	}

	fields, _ := action.Configuration["fields"].(map[string]any)

	switch action.Type {
	case models.ActionCreateRecord:
		recordID, err := e.store.CreateRecord(ctx, collection, fields)
		if err != nil {
			return nil, fmt.Errorf("create record failed: %w", err)
		}

		logger.Info("Record created", "collection", collection, "record_id", recordID)

		return map[string]any{"record_id": recordID, "collection": collection}, nil

	case models.ActionUpdateRecord:
		recordID, _ := action.Configuration["record_id"].(string)
		if recordID == "" {
			return nil, fmt.Errorf("update-record action %s has no record_id", action.ID)
		}

		if err := e.store.UpdateRecord(ctx, collection, recordID, fields); err != nil {
			return nil, fmt.Errorf("update record failed: %w", err)
		}

		logger.Info("Record updated", "collection", collection, "record_id", recordID)

		return map[string]any{"record_id": recordID, "collection": collection}, nil

	default:
		return nil, fmt.Errorf("record executor cannot handle action type %s", action.Type)
	}
}
