package sendmessage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleflow/ruleflow/pkg/executors/sendmessage"
	"github.com/ruleflow/ruleflow/pkg/models"
)

type fakeSender struct {
	sent []sendmessage.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, message sendmessage.Message) error {
	if s.err != nil {
		return s.err
	}

	s.sent = append(s.sent, message)

	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestExecuteSendsMessage(t *testing.T) {
	sender := &fakeSender{}
	executor := sendmessage.NewExecutor(sender)

	output, err := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionSendMessage,
		Configuration: map[string]any{
			"recipients": []any{"alice@example.com", "bob@example.com"},
			"subject":    "Task overdue",
			"body":       "The boiler inspection is overdue.",
			"channel":    "email",
		},
	}, nil, testLogger())
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, sender.sent[0].Recipients)
	assert.Equal(t, "Task overdue", sender.sent[0].Subject)
	assert.Equal(t, "email", sender.sent[0].Channel)

	result, ok := output.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, result["delivered"])
}

func TestExecuteCommaSeparatedRecipients(t *testing.T) {
	sender := &fakeSender{}
	executor := sendmessage.NewExecutor(sender)

	_, err := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionSendMessage,
		Configuration: map[string]any{
			"recipients": "alice@example.com, bob@example.com , ",
			"body":       "hi",
		},
	}, nil, testLogger())
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, sender.sent[0].Recipients)
}

func TestExecuteNoRecipients(t *testing.T) {
	executor := sendmessage.NewExecutor(&fakeSender{})

	_, err := executor.Execute(context.Background(), models.Action{
		ID:            "a1",
		Type:          models.ActionSendMessage,
		Configuration: map[string]any{"body": "hi"},
	}, nil, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipients")
}

func TestExecuteDeliveryFailure(t *testing.T) {
	executor := sendmessage.NewExecutor(&fakeSender{err: errors.New("smtp down")})

	_, err := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionSendMessage,
		Configuration: map[string]any{
			"recipients": "ops@example.com",
			"body":       "hi",
		},
	}, nil, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestExecuteNoSenderConfigured(t *testing.T) {
	executor := sendmessage.NewExecutor(nil)

	_, err := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionSendMessage,
		Configuration: map[string]any{
			"recipients": "ops@example.com",
			"body":       "hi",
		},
	}, nil, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no message sender")
}
