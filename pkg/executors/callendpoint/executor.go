// Package callendpoint executes call-endpoint actions as HTTP requests.
package callendpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ruleflow/ruleflow/pkg/models"
)

const defaultTimeout = 30 * time.Second

// Executor performs a single HTTP request per action. Retrying is the
// engine's responsibility; the executor reports failures and lets the retry
// policy decide.
type Executor struct {
	client  *http.Client
	timeout time.Duration
}

func NewExecutor(config map[string]any) *Executor {
	timeout := defaultTimeout
	if seconds, ok := config["timeout_seconds"].(float64); ok && seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}

	return &Executor{
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (e *Executor) Execute(ctx context.Context, action models.Action, _ map[string]any, logger *slog.Logger) (any, error) {
	logger = logger.With("action_type", "call-endpoint")

	url, _ := action.Configuration["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("call-endpoint action %s has no url", action.ID)
	}

	method, _ := action.Configuration["method"].(string)
	if method == "" {
		method = http.MethodPost
	}

	method = strings.ToUpper(method)

	var bodyReader io.Reader

	switch body := action.Configuration["body"].(type) {
	case string:
		if body != "" {
			bodyReader = strings.NewReader(body)
		}
	case map[string]any:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		bodyReader = strings.NewReader(string(encoded))
	}

	reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	if headers, ok := action.Configuration["headers"].(map[string]any); ok {
		for key, value := range headers {
			if str, ok := value.(string); ok {
				req.Header.Set(key, str)
			}
		}
	}

	if req.Header.Get("Content-Type") == "" && bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("Failed to close response body", "error", cerr)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	var body any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		body = string(bodyBytes)
	}

	logger.Info("Endpoint call completed", "url", url, "status", resp.StatusCode)

	return map[string]any{
		"status_code": resp.StatusCode,
		"body":        body,
	}, nil
}
