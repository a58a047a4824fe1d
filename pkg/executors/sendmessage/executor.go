// Package sendmessage executes send-message actions through a host-supplied
// message channel.
package sendmessage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// Message is one outbound delivery request handed to the host channel.
type Message struct {
	Recipients []string       `json:"recipients"`
	Subject    string         `json:"subject,omitempty"`
	Body       string         `json:"body"`
	Channel    string         `json:"channel,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Sender delivers messages. The host application injects the concrete
// implementation (email, chat, push); delivery guarantees are its concern.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

type Executor struct {
	sender Sender
}

func NewExecutor(sender Sender) *Executor {
	return &Executor{sender: sender}
}

func (e *Executor) Execute(ctx context.Context, action models.Action, _ map[string]any, logger *slog.Logger) (any, error) {
	logger = logger.With("action_type", "send-message")

	if e.sender == nil {
		return nil, errors.New("no message sender configured")
	}

	message := Message{
		Subject: stringConfig(action.Configuration, "subject"),
		Body:    stringConfig(action.Configuration, "body"),
		Channel: stringConfig(action.Configuration, "channel"),
	}

	message.Recipients = recipientList(action.Configuration["recipients"])
	if len(message.Recipients) == 0 {
		return nil, fmt.Errorf("send-message action %s has no recipients", action.ID)
	}

	if metadata, ok := action.Configuration["metadata"].(map[string]any); ok {
		message.Metadata = metadata
	}

	if err := e.sender.Send(ctx, message); err != nil {
		return nil, fmt.Errorf("message delivery failed: %w", err)
	}

	logger.Info("Message sent", "recipients", len(message.Recipients), "channel", message.Channel)

	return map[string]any{
		"recipients": message.Recipients,
		"delivered":  true,
	}, nil
}

// recipientList accepts a comma-separated string or a list.
func recipientList(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}

		parts := strings.Split(v, ",")
		recipients := make([]string, 0, len(parts))

		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				recipients = append(recipients, trimmed)
			}
		}

		return recipients
	case []any:
		recipients := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok && str != "" {
				recipients = append(recipients, str)
			}
		}

		return recipients
	case []string:
		return v
	default:
		return nil
	}
}

func stringConfig(config map[string]any, key string) string {
	value, _ := config[key].(string)

	return value
}
