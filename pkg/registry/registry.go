// Package registry maps action types to their executor factories. It is the
// single dispatch point between workflow actions and side-effect executors.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/ruleflow/ruleflow/pkg/protocol"
)

type Registry struct {
	logger            *slog.Logger
	executorFactories map[string]protocol.ExecutorFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:            logger,
		executorFactories: make(map[string]protocol.ExecutorFactory),
	}
}

func (r *Registry) RegisterExecutor(factory protocol.ExecutorFactory) {
	r.executorFactories[factory.ID()] = factory
}

func (r *Registry) CreateExecutor(actionType string, config map[string]any) (protocol.Executor, error) {
	factory, ok := r.executorFactories[actionType]
	if !ok {
		return nil, fmt.Errorf("action type '%s' not registered", actionType)
	}

	return factory.Create(config)
}

// AvailableExecutors returns the registered action types.
func (r *Registry) AvailableExecutors() []string {
	types := make([]string, 0, len(r.executorFactories))
	for actionType := range r.executorFactories {
		types = append(types, actionType)
	}

	return types
}

func (r *Registry) HealthCheck() (string, bool) {
	if len(r.executorFactories) == 0 {
		return "No executors registered", false
	}

	return fmt.Sprintf("%d executors registered", len(r.executorFactories)), true
}

// ExecutorSchema returns the configuration schema for an action type.
func (r *Registry) ExecutorSchema(actionType string) (map[string]any, bool) {
	factory, ok := r.executorFactories[actionType]
	if !ok {
		return nil, false
	}

	return factory.Schema(), true
}
