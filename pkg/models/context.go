package models

import "time"

// UserProfile carries the acting user's identity for rule evaluation.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Environment describes the device and location an evaluation happens in.
type Environment struct {
	DeviceType string `json:"device_type"`
	Location   string `json:"location,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
}

// Context is the bundle of runtime state rules are evaluated against.
// Contexts are scoped to a single evaluation pass and never shared across
// concurrent evaluations.
type Context struct {
	Variables      map[string]any `json:"variables,omitempty"`
	UserProfile    UserProfile    `json:"user_profile"`
	Environment    Environment    `json:"environment"`
	CompletedSteps []string       `json:"completed_steps,omitempty"`
	StepResults    map[string]any `json:"step_results,omitempty"`
	Now            time.Time      `json:"now,omitempty"`
}

// StepCompleted reports whether the step with the given ID has finished.
func (c *Context) StepCompleted(stepID string) bool {
	for _, id := range c.CompletedSteps {
		if id == stepID {
			return true
		}
	}

	return false
}

// Variable returns the current value of a variable, nil when absent.
func (c *Context) Variable(name string) any {
	if c.Variables == nil {
		return nil
	}

	return c.Variables[name]
}
