package domain

import "time"

// AgentError records a step failure. Entries are append-only and correlated
// to the originating run and step by plain identifiers.
type AgentError struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RunID      string    `json:"runId"`
	StepID     string    `json:"stepId,omitempty"`
	Role       Role      `json:"role,omitempty"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	File       string    `json:"file,omitempty"`
	Severity   Severity  `json:"severity,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// ErrorDatabase is the single persisted document holding the error log.
type ErrorDatabase struct {
	Errors []AgentError `json:"errors"`
}
