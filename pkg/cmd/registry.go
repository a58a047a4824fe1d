// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"log/slog"

	"github.com/ruleflow/ruleflow/pkg/executors/callendpoint"
	"github.com/ruleflow/ruleflow/pkg/executors/integration"
	"github.com/ruleflow/ruleflow/pkg/executors/record"
	"github.com/ruleflow/ruleflow/pkg/executors/sendmessage"
	"github.com/ruleflow/ruleflow/pkg/gateway"
	"github.com/ruleflow/ruleflow/pkg/registry"
)

// NewRegistry builds the executor registry with the native action set wired
// to the internal service gateway.
func NewRegistry(logger *slog.Logger, gatewayURL, gatewayAPIKey string) *registry.Registry {
	reg := registry.NewRegistry(logger)

	client := gateway.NewClient(gatewayURL, gatewayAPIKey, logger)

	reg.RegisterExecutor(callendpoint.NewExecutorFactory())
	reg.RegisterExecutor(sendmessage.NewExecutorFactory(gateway.NewMessageSender(client)))
	reg.RegisterExecutor(record.NewCreateFactory(gateway.NewRecordStore(client)))
	reg.RegisterExecutor(record.NewUpdateFactory(gateway.NewRecordStore(client)))
	reg.RegisterExecutor(integration.NewSyncFactory(gateway.NewIntegrationSyncer(client)))
	reg.RegisterExecutor(integration.NewAnalysisFactory(gateway.NewAnalysisRunner(client)))

	return reg
}
