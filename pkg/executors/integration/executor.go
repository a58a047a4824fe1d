// Package integration executes sync-integration and run-analysis actions
// through host-supplied collaborators.
package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// Syncer triggers a sync of an external integration.
type Syncer interface {
	Sync(ctx context.Context, integrationID string, options map[string]any) error
}

// AnalysisRunner starts an analysis job and returns its reference.
type AnalysisRunner interface {
	Run(ctx context.Context, analysisType string, input map[string]any) (string, error)
}

type SyncExecutor struct {
	syncer Syncer
}

func NewSyncExecutor(syncer Syncer) *SyncExecutor {
	return &SyncExecutor{syncer: syncer}
}

func (e *SyncExecutor) Execute(ctx context.Context, action models.Action, _ map[string]any, logger *slog.Logger) (any, error) {
	if e.syncer == nil {
		return nil, errors.New("no integration syncer configured")
	}

	integrationID, _ := action.Configuration["integration_id"].(string)
	if integrationID == "" {
		return nil, fmt.Errorf("sync-integration action %s has no integration_id", action.ID)
	}

	options, _ := action.Configuration["options"].(map[string]any)

	if err := e.syncer.Sync(ctx, integrationID, options); err != nil {
		return nil, fmt.Errorf("integration sync failed: %w", err)
	}

	logger.Info("Integration synced", "integration_id", integrationID)

	return map[string]any{"integration_id": integrationID, "synced": true}, nil
}

type AnalysisExecutor struct {
	runner AnalysisRunner
}

func NewAnalysisExecutor(runner AnalysisRunner) *AnalysisExecutor {
	return &AnalysisExecutor{runner: runner}
}

func (e *AnalysisExecutor) Execute(ctx context.Context, action models.Action, payload map[string]any, logger *slog.Logger) (any, error) {
	if e.runner == nil {
		return nil, errors.New("no analysis runner configured")
	}

	analysisType, _ := action.Configuration["analysis_type"].(string)
	if analysisType == "" {
		return nil, fmt.Errorf("run-analysis action %s has no analysis_type", action.ID)
	}

	input, _ := action.Configuration["input"].(map[string]any)
	if input == nil {
		input = payload
	}

	jobID, err := e.runner.Run(ctx, analysisType, input)
	if err != nil {
		return nil, fmt.Errorf("analysis run failed: %w", err)
	}

	logger.Info("Analysis started", "analysis_type", analysisType, "job_id", jobID)

	return map[string]any{"job_id": jobID, "analysis_type": analysisType}, nil
}
