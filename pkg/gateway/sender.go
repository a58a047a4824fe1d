package gateway

import (
	"context"
	"net/http"

	"github.com/ruleflow/ruleflow/pkg/executors/sendmessage"
)

// MessageSender delivers messages through the internal service API.
type MessageSender struct {
	client *Client
}

func NewMessageSender(client *Client) *MessageSender {
	return &MessageSender{client: client}
}

func (s *MessageSender) Send(ctx context.Context, message sendmessage.Message) error {
	err := s.client.post(ctx, http.MethodPost, "/v1/messages", message, nil)
	if err != nil {
		return err
	}

	s.client.logger.Debug("Message dispatched",
		"recipients", len(message.Recipients),
		"channel", message.Channel)

	return nil
}
