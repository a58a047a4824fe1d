package record

import (
	"github.com/ruleflow/ruleflow/pkg/models"
	"github.com/ruleflow/ruleflow/pkg/protocol"
)

// CreateFactory serves create-record actions.
type CreateFactory struct {
	store Store
}

func NewCreateFactory(store Store) *CreateFactory {
	return &CreateFactory{store: store}
}

func (*CreateFactory) ID() string {
	return string(models.ActionCreateRecord)
}

func (*CreateFactory) Name() string {
	return "Create Record"
}

func (*CreateFactory) Description() string {
	return "Creates a record in the host data store."
}

func (f *CreateFactory) Create(_ map[string]any) (protocol.Executor, error) {
	return NewExecutor(f.store), nil
}

func (f *CreateFactory) Schema() map[string]any {
	return recordSchema(false)
}

// UpdateFactory serves update-record actions.
type UpdateFactory struct {
	store Store
}

func NewUpdateFactory(store Store) *UpdateFactory {
	return &UpdateFactory{store: store}
}

func (*UpdateFactory) ID() string {
	return string(models.ActionUpdateRecord)
}

func (*UpdateFactory) Name() string {
	return "Update Record"
}

func (*UpdateFactory) Description() string {
	return "Updates an existing record in the host data store."
}

func (f *UpdateFactory) Create(_ map[string]any) (protocol.Executor, error) {
	return NewExecutor(f.store), nil
}

func (f *UpdateFactory) Schema() map[string]any {
	return recordSchema(true)
}

func recordSchema(update bool) map[string]any {
	properties := map[string]any{
		"collection": map[string]any{
			"type":        "string",
			"description": "Target collection name",
		},
		"fields": map[string]any{
			"type":        "object",
			"description": "Field values to write. Supports placeholders.",
		},
	}

	required := []string{"collection"}

	if update {
		properties["record_id"] = map[string]any{
			"type":        "string",
			"description": "Identifier of the record to update. Supports placeholders.",
		}
		required = append(required, "record_id")
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
