package integration

import (
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/protocol"
)

type SyncFactory struct {
	syncer Syncer
}

func NewSyncFactory(syncer Syncer) *SyncFactory {
	return &SyncFactory{syncer: syncer}
}

func (*SyncFactory) ID() string {
	return string(models.ActionSyncIntegration)
}

func (*SyncFactory) Name() string {
	return "Sync Integration"
}

func (*SyncFactory) Description() string {
	return "Triggers a sync of an external integration."
}

func (f *SyncFactory) Create(_ map[string]any) (protocol.Executor, error) {
	return NewSyncExecutor(f.syncer), nil
}

func (f *SyncFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"integration_id": map[string]any{
				"type":        "string",
				"description": "Identifier of the integration to sync",
			},
			"options": map[string]any{
				"type":        "object",
				"description": "Integration-specific sync options",
			},
		},
		"required": []string{"integration_id"},
	}
}

type AnalysisFactory struct {
	runner AnalysisRunner
}

func NewAnalysisFactory(runner AnalysisRunner) *AnalysisFactory {
	return &AnalysisFactory{runner: runner}
}

func (*AnalysisFactory) ID() string {
	return string(models.ActionRunAnalysis)
}

func (*AnalysisFactory) Name() string {
	return "Run Analysis"
}

func (*AnalysisFactory) Description() string {
	return "Starts an analysis job over the event payload or a configured input."
}

func (f *AnalysisFactory) Create(_ map[string]any) (protocol.Executor, error) {
	return NewAnalysisExecutor(f.runner), nil
}

func (f *AnalysisFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"analysis_type": map[string]any{
				"type":        "string",
				"description": "Kind of analysis to run",
			},
			"input": map[string]any{
				"type":        "object",
				"description": "Analysis input; defaults to the event payload",
			},
		},
		"required": []string{"analysis_type"},
	}
}
