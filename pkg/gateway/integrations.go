package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// IntegrationSyncer requests integration syncs through the internal
// service API.
type IntegrationSyncer struct {
	client *Client
}

func NewIntegrationSyncer(client *Client) *IntegrationSyncer {
	return &IntegrationSyncer{client: client}
}

func (s *IntegrationSyncer) Sync(ctx context.Context, integrationID string, options map[string]any) error {
	path := fmt.Sprintf("/v1/integrations/%s/sync", integrationID)

	return s.client.post(ctx, http.MethodPost, path, map[string]any{"options": options}, nil)
}

// AnalysisRunner starts analysis jobs through the internal service API.
type AnalysisRunner struct {
	client *Client
}

func NewAnalysisRunner(client *Client) *AnalysisRunner {
	return &AnalysisRunner{client: client}
}

type runAnalysisResponse struct {
	JobID string `json:"job_id"`
}

func (r *AnalysisRunner) Run(ctx context.Context, analysisType string, input map[string]any) (string, error) {
	var resp runAnalysisResponse

	err := r.client.post(ctx, http.MethodPost, "/v1/analyses", map[string]any{
		"type":  analysisType,
		"input": input,
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.JobID, nil
}
