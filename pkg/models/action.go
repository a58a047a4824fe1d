package models

import "time"

// ActionType is the closed set of side effects a workflow can request.
// Concrete execution is delegated to registered executors; the engine never
// performs the side effect itself.
type ActionType string

const (
	ActionSendMessage     ActionType = "send-message"
	ActionCreateRecord    ActionType = "create-record"
	ActionUpdateRecord    ActionType = "update-record"
	ActionCallEndpoint    ActionType = "call-endpoint"
	ActionSyncIntegration ActionType = "sync-integration"
	ActionRunAnalysis     ActionType = "run-analysis"
)

// BackoffStrategy selects how retry delays grow between attempts.
type BackoffStrategy string

const (
	BackoffLinear      BackoffStrategy = "linear"
	BackoffExponential BackoffStrategy = "exponential"
)

// RetryPolicy is the backoff schedule governing repeated attempts of a
// failed action.
type RetryPolicy struct {
	MaxRetries          int             `json:"max_retries"`
	BackoffStrategy     BackoffStrategy `json:"backoff_strategy"`
	InitialDelaySeconds int             `json:"initial_delay_seconds"`
	MaxDelaySeconds     int             `json:"max_delay_seconds"`
}

// Delay returns the wait before retry attempt n (1-based), capped at
// MaxDelaySeconds. Exponential doubles from the initial delay: 1, 2, 4...
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}

	initial := p.InitialDelaySeconds

	var seconds int

	switch p.BackoffStrategy {
	case BackoffExponential:
		seconds = initial << (attempt - 1)
	case BackoffLinear:
		seconds = initial * attempt
	default:
		seconds = initial * attempt
	}

	if p.MaxDelaySeconds > 0 && seconds > p.MaxDelaySeconds {
		seconds = p.MaxDelaySeconds
	}

	return time.Duration(seconds) * time.Second
}

// Action is one ordered side-effect request. Actions execute strictly in
// ascending Order; action i+1 never starts before action i finished.
type Action struct {
	ID            string         `json:"id"            validate:"required"`
	Type          ActionType     `json:"type"          validate:"required"`
	Name          string         `json:"name,omitempty"`
	Configuration map[string]any `json:"configuration"`
	Retry         *RetryPolicy   `json:"retry,omitempty"`
	Order         int            `json:"order"`
}
