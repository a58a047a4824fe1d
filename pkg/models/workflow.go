package models

import "time"

// ExecutionStatus is the recorded outcome of a workflow run.
type ExecutionStatus string

const (
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusFailed  ExecutionStatus = "failed"
	ExecutionStatusTimeout ExecutionStatus = "timeout"
)

// Analytics is the cumulative per-workflow aggregate of execution outcomes.
// Counters accumulate monotonically and are mutated only by the engine after
// each run, never by external callers.
type Analytics struct {
	TotalExecutions        int64           `json:"total_executions"`
	SuccessfulExecutions   int64           `json:"successful_executions"`
	FailedExecutions       int64           `json:"failed_executions"`
	AverageExecutionTimeMS float64         `json:"average_execution_time_ms"`
	LastExecutionStatus    ExecutionStatus `json:"last_execution_status,omitempty"`
	LastExecutionTime      *time.Time      `json:"last_execution_time,omitempty"`
	ErrorRatePercent       float64         `json:"error_rate_percent"`
}

// Record folds one execution outcome into the aggregate: running mean for
// duration, recomputed error rate, last-status bookkeeping.
func (a *Analytics) Record(status ExecutionStatus, duration time.Duration, at time.Time) {
	a.TotalExecutions++

	if status == ExecutionStatusSuccess {
		a.SuccessfulExecutions++
	} else {
		a.FailedExecutions++
	}

	ms := float64(duration.Milliseconds())
	a.AverageExecutionTimeMS += (ms - a.AverageExecutionTimeMS) / float64(a.TotalExecutions)

	a.LastExecutionStatus = status
	a.LastExecutionTime = &at
	a.ErrorRatePercent = float64(a.FailedExecutions) / float64(a.TotalExecutions) * 100
}

// Workflow binds a trigger, a condition chain and an ordered action list.
// Workflows are created disabled unless explicitly enabled and survive until
// deleted.
type Workflow struct {
	ID          string      `json:"id"`
	WorkspaceID string      `json:"workspace_id" validate:"required"`
	Name        string      `json:"name"         validate:"required,min=3"`
	Description string      `json:"description,omitempty"`
	Enabled     bool        `json:"enabled"`
	Trigger     Trigger     `json:"trigger"      validate:"required"`
	Conditions  []Condition `json:"conditions,omitempty"`
	Actions     []Action    `json:"actions"      validate:"dive"`
	Frequency   string      `json:"frequency,omitempty"`
	Analytics   Analytics   `json:"analytics"`
	Owner       string      `json:"owner,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderedActions returns the workflow's actions sorted by ascending Order
// without mutating the workflow.
func (w *Workflow) OrderedActions() []Action {
	actions := make([]Action, len(w.Actions))
	copy(actions, w.Actions)

	for i := 1; i < len(actions); i++ {
		for j := i; j > 0 && actions[j-1].Order > actions[j].Order; j-- {
			actions[j-1], actions[j] = actions[j], actions[j-1]
		}
	}

	return actions
}

// ExecutionResult summarizes one workflow run for callers and analytics.
type ExecutionResult struct {
	ExecutionID   string          `json:"execution_id"`
	WorkflowID    string          `json:"workflow_id"`
	Status        ExecutionStatus `json:"status"`
	ActionsRun    int             `json:"actions_run"`
	FailedAction  string          `json:"failed_action,omitempty"`
	Error         string          `json:"error,omitempty"`
	StartedAt     time.Time       `json:"started_at"`
	Duration      time.Duration   `json:"duration"`
	ActionResults map[string]any  `json:"action_results,omitempty"`
}
