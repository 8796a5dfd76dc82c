// Package domain defines the core domain models for the orchestrator.
package domain

// Status represents the lifecycle state of a step or a whole run.
// Run status is always derived from step statuses, never set directly.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusPaused    Status = "paused"
)

// Role identifies a contributor category within a run. The set is closed.
type Role string

const (
	RolePM          Role = "PM"
	RoleTechLead    Role = "TechLead"
	RoleDev         Role = "Dev"
	RoleQA          Role = "QA"
	RoleDocs        Role = "Docs"
	RoleResearch    Role = "Research"
	RoleDevOps      Role = "DevOps"
	RoleSecurity    Role = "Security"
	RolePerformance Role = "Performance"
	RoleUX          Role = "UX"
	RoleData        Role = "Data"
)

// AllRoles lists every valid role. Table completeness is asserted in tests.
var AllRoles = []Role{
	RolePM, RoleTechLead, RoleDev, RoleQA, RoleDocs, RoleResearch,
	RoleDevOps, RoleSecurity, RolePerformance, RoleUX, RoleData,
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Severity classifies a recorded error.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// StepAction is a caller-facing command against a step.
type StepAction string

const (
	ActionStart    StepAction = "start"
	ActionPause    StepAction = "pause"
	ActionComplete StepAction = "complete"
	ActionFail     StepAction = "fail"
	ActionRetry    StepAction = "retry"
)

// Status maps an action to the step status it requests.
// The second return is false for unknown actions.
func (a StepAction) Status() (Status, bool) {
	switch a {
	case ActionStart, ActionRetry:
		return StatusRunning, true
	case ActionPause:
		return StatusPaused, true
	case ActionComplete:
		return StatusCompleted, true
	case ActionFail:
		return StatusFailed, true
	}
	return "", false
}

// RunEventType represents the type of a structured run event.
type RunEventType string

const (
	EventRunStarted        RunEventType = "run_started"
	EventStepStatusChanged RunEventType = "step_status_changed"
	EventNoteAdded         RunEventType = "note_added"
	EventErrorRecorded     RunEventType = "error_recorded"
	EventRolesUpdated      RunEventType = "roles_updated"
	EventHookResearchLink  RunEventType = "hook_research_linked"
	EventHookDocsPrefill   RunEventType = "hook_docs_prefilled"
	EventHookDocsRequest   RunEventType = "hook_docs_requested"
	EventHookResearchSaved RunEventType = "hook_research_saved"
)
