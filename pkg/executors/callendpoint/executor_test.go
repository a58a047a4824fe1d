package callendpoint_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleflow/ruleflow/pkg/executors/callendpoint"
	"github.com/ruleflow/ruleflow/pkg/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestExecuteSendsRequest(t *testing.T) {
	var gotMethod, gotContentType string

	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")

		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	executor := callendpoint.NewExecutor(nil)

	output, err := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionCallEndpoint,
		Configuration: map[string]any{
			"url":  server.URL,
			"body": map[string]any{"task_id": "t-1"},
		},
	}, nil, testLogger())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "t-1", gotBody["task_id"])

	result, ok := output.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, result["status_code"])
	assert.Equal(t, map[string]any{"ok": true}, result["body"])
}

func TestExecuteCustomMethodAndHeaders(t *testing.T) {
	var gotMethod, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	executor := callendpoint.NewExecutor(nil)

	_, err := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionCallEndpoint,
		Configuration: map[string]any{
			"url":    server.URL,
			"method": "put",
			"headers": map[string]any{
				"Authorization": "Bearer token",
			},
		},
	}, nil, testLogger())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Bearer token", gotAuth)
}

func TestExecuteErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	executor := callendpoint.NewExecutor(nil)

	_, err := executor.Execute(context.Background(), models.Action{
		ID:            "a1",
		Type:          models.ActionCallEndpoint,
		Configuration: map[string]any{"url": server.URL},
	}, nil, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestExecuteMissingURL(t *testing.T) {
	executor := callendpoint.NewExecutor(nil)

	_, err := executor.Execute(context.Background(), models.Action{
		ID:            "a1",
		Type:          models.ActionCallEndpoint,
		Configuration: map[string]any{},
	}, nil, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no url")
}

func TestExecuteNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain text"))
	}))
	defer server.Close()

	executor := callendpoint.NewExecutor(nil)

	output, err := executor.Execute(context.Background(), models.Action{
		ID:            "a1",
		Type:          models.ActionCallEndpoint,
		Configuration: map[string]any{"url": server.URL},
	}, nil, testLogger())
	require.NoError(t, err)

	result, ok := output.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "plain text", result["body"])
}
