package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/protocol"
)

// executeWithRetry runs one action through its executor, retrying per the
// action's policy. Delays honor ctx cancellation so a run deadline cuts the
// backoff short instead of sleeping through it.
func executeWithRetry(
	ctx context.Context,
	executor protocol.Executor,
	action models.Action,
	payload map[string]any,
	logger *slog.Logger,
) (any, error) {
	policy := models.RetryPolicy{}
	if action.Retry != nil {
		policy = *action.Retry
	}

	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := policy.Delay(attempt)

			logger.Info("Retrying action",
				"action_id", action.ID,
				"attempt", attempt,
				"max_retries", policy.MaxRetries,
				"delay", delay)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("action %s aborted during backoff: %w", action.ID, ctx.Err())
			case <-time.After(delay):
			}
		}

		result, err := executor.Execute(ctx, action, payload, logger)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("action %s aborted: %w", action.ID, ctx.Err())
		}

		logger.Warn("Action attempt failed",
			"action_id", action.ID,
			"attempt", attempt,
			"error", err)
	}

	return nil, fmt.Errorf("action %s failed after %d retries: %w", action.ID, policy.MaxRetries, lastErr)
}
