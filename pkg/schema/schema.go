// Package schema validates action configurations against executor-declared
// JSON schemas before a workflow definition is accepted.
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/registry"
)

// Validate checks data against a JSON schema expressed as a Go map.
func Validate(schema map[string]any, data map[string]any) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	dataLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}

		return fmt.Errorf("validation errors: %s", strings.Join(descriptions, "; "))
	}

	return nil
}

// ValidateWorkflowActions checks every action's configuration against the
// schema its executor factory declares. Templated values pass validation as
// strings; resolution happens at execution time.
func ValidateWorkflowActions(reg *registry.Registry, workflow *models.Workflow) error {
	for _, action := range workflow.Actions {
		actionSchema, ok := reg.ExecutorSchema(string(action.Type))
		if !ok {
			return fmt.Errorf("action %s has unknown type %q", action.ID, action.Type)
		}

		if actionSchema == nil {
			continue
		}

		if err := Validate(actionSchema, action.Configuration); err != nil {
			return fmt.Errorf("action %s configuration invalid: %w", action.ID, err)
		}
	}

	return nil
}
