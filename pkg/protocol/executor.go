// Package protocol defines the interfaces between the engine and its
// collaborators: action executors and their factories.
package protocol

import (
	"context"
	"log/slog"

	"github.com/ruleflow/ruleflow/pkg/models"
)

// Executor performs the side effect one action type requests. The engine
// resolves placeholders in the action configuration before calling Execute;
// retries and ordering are the engine's concern, not the executor's.
// Implementations must honor ctx cancellation, it carries the run deadline.
type Executor interface {
	Execute(ctx context.Context, action models.Action, payload map[string]any, logger *slog.Logger) (any, error)
}

// ExecutorFactory builds executors for one action type.
type ExecutorFactory interface {
	// ID returns the action type this factory serves.
	ID() string

	// Name returns the human-readable executor name.
	Name() string

	// Description describes the side effect performed.
	Description() string

	// Schema returns the JSON schema for the action configuration.
	Schema() map[string]any

	// Create builds an executor from host-level configuration.
	Create(config map[string]any) (Executor, error)
}
