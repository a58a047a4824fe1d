package callendpoint

import (
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/protocol"
)

// ExecutorFactory creates call-endpoint executors.
type ExecutorFactory struct{}

func NewExecutorFactory() *ExecutorFactory {
	return &ExecutorFactory{}
}

func (*ExecutorFactory) ID() string {
	return string(models.ActionCallEndpoint)
}

func (*ExecutorFactory) Name() string {
	return "Call Endpoint"
}

func (*ExecutorFactory) Description() string {
	return "Performs an HTTP request against an external endpoint. URL, method, headers and body support templating against the event payload."
}

func (f *ExecutorFactory) Create(config map[string]any) (protocol.Executor, error) {
	if config == nil {
		config = map[string]any{}
	}

	return NewExecutor(config), nil
}

func (f *ExecutorFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Endpoint URL. Supports {{path.to.value}} placeholders.",
				"examples": []string{
					"https://api.example.com/orders/{{order.id}}",
					"https://hooks.example.com/notify",
				},
			},
			"method": map[string]any{
				"type":        "string",
				"description": "HTTP method",
				"default":     "POST",
				"enum":        []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			},
			"headers": map[string]any{
				"type":        "object",
				"description": "Request headers",
			},
			"body": map[string]any{
				"description": "Request body, a string or an object encoded as JSON",
			},
		},
		"required": []string{"url"},
	}
}
