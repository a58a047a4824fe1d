package sendmessage

import (
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/protocol"
)

// ExecutorFactory creates send-message executors bound to a Sender.
type ExecutorFactory struct {
	sender Sender
}

func NewExecutorFactory(sender Sender) *ExecutorFactory {
	return &ExecutorFactory{sender: sender}
}

func (*ExecutorFactory) ID() string {
	return string(models.ActionSendMessage)
}

func (*ExecutorFactory) Name() string {
	return "Send Message"
}

func (*ExecutorFactory) Description() string {
	return "Delivers a message through the host's outbound channel. Recipients, subject and body support templating against the event payload."
}

func (f *ExecutorFactory) Create(_ map[string]any) (protocol.Executor, error) {
	return NewExecutor(f.sender), nil
}

func (f *ExecutorFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recipients": map[string]any{
				"description": "Recipient list or comma-separated string. Supports placeholders.",
				"examples": []string{
					"{{assignee.email}}",
					"ops@example.com,oncall@example.com",
				},
			},
			"subject": map[string]any{
				"type":        "string",
				"description": "Message subject",
			},
			"body": map[string]any{
				"type":        "string",
				"description": "Message body. Supports {{path.to.value}} placeholders.",
			},
			"channel": map[string]any{
				"type":        "string",
				"description": "Delivery channel hint (email, chat, push)",
			},
		},
		"required": []string{"recipients", "body"},
	}
}
