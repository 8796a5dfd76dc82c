package domain

// StartRunOptions tunes a single startRun call. Nil pointers fall back to
// the orchestrator-wide defaults.
type StartRunOptions struct {
	Roles                 []Role `json:"roles,omitempty"`
	AutoResearchPrestep   *bool  `json:"autoResearchPrestep,omitempty"`
	EnableAutomationHooks *bool  `json:"enableAutomationHooks,omitempty"`
}

// StartRunRequest represents the request to start a run.
type StartRunRequest struct {
	Feature string           `json:"feature"`
	Goal    string           `json:"goal"`
	Options *StartRunOptions `json:"options,omitempty"`
}

// ErrorInput is the caller-supplied error payload attached to a fail action.
// Severity defaults to medium when empty.
type ErrorInput struct {
	Message    string   `json:"message"`
	Details    string   `json:"details,omitempty"`
	File       string   `json:"file,omitempty"`
	Severity   Severity `json:"severity,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// StepActionRequest represents a step lifecycle command.
type StepActionRequest struct {
	Action  StepAction  `json:"action"`
	Details string      `json:"details,omitempty"`
	Error   *ErrorInput `json:"error,omitempty"`
}

// AddNoteRequest represents a request to append a note to a step.
type AddNoteRequest struct {
	Note string `json:"note"`
}

// UpdateRolesRequest represents a request to merge or replace a run's roles.
// Merge defaults to true when omitted.
type UpdateRolesRequest struct {
	Roles []Role `json:"roles"`
	Merge *bool  `json:"merge,omitempty"`
}

// SaveKnowledgeRequest represents a request to save a knowledge note.
type SaveKnowledgeRequest struct {
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Meta    *KnowledgeMeta `json:"meta,omitempty"`
}
