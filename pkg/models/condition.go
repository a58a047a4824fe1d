package models

// LogicOperator joins a workflow condition to the NEXT condition in the
// chain. Conditions form a flat left-to-right fold, not an expression tree:
// c1 OP1 c2 OP2 c3, evaluated strictly sequentially with no grouping.
// Existing workflow definitions depend on this order, so it is preserved
// rather than replaced with conventional operator precedence.
type LogicOperator string

const (
	LogicAnd LogicOperator = "AND"
	LogicOr  LogicOperator = "OR"
)

// Condition is one link of a workflow's condition chain, evaluated against
// the triggering event payload via dotted-path field lookup.
type Condition struct {
	Field         string        `json:"field"    validate:"required"`
	Operator      Operator      `json:"operator" validate:"required"`
	Value         any           `json:"value,omitempty"`
	LogicOperator LogicOperator `json:"logic_operator,omitempty"`
}
