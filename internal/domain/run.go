package domain

import (
	"strings"
	"time"
)

// AgentStep is one role's unit of work inside a run.
//
// Details is an append-only log shared by human notes and automation hook
// annotations; it is only ever extended via AppendDetails.
type AgentStep struct {
	ID         string     `json:"id"`
	Role       Role       `json:"role"`
	Summary    string     `json:"summary"`
	Details    string     `json:"details,omitempty"`
	Status     Status     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// AppendDetails concatenates line onto the detail log with a newline
// separator. Existing content is never overwritten.
func (s *AgentStep) AppendDetails(line string) {
	if s.Details != "" {
		s.Details += "\n"
	}
	s.Details += line
}

// AgentRun is one orchestrated multi-role work session for a feature/goal.
type AgentRun struct {
	ID         string       `json:"id"`
	Feature    string       `json:"feature"`
	Goal       string       `json:"goal"`
	Status     Status       `json:"status"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt *time.Time   `json:"finishedAt,omitempty"`
	Steps      []*AgentStep `json:"steps"`
	Events     []RunEvent   `json:"events,omitempty"`
}

// RunEvent is a structured trace entry mirroring the free-text detail log,
// so hook behavior can be asserted without string matching.
type RunEvent struct {
	Ts     time.Time    `json:"ts"`
	Type   RunEventType `json:"type"`
	StepID string       `json:"stepId,omitempty"`
	Role   Role         `json:"role,omitempty"`
	Detail string       `json:"detail,omitempty"`
}

// Record appends a structured event to the run's trail.
func (r *AgentRun) Record(ts time.Time, typ RunEventType, stepID string, role Role, detail string) {
	r.Events = append(r.Events, RunEvent{Ts: ts, Type: typ, StepID: stepID, Role: role, Detail: detail})
}

// StepByID returns the step with the given id, or nil.
func (r *AgentRun) StepByID(id string) *AgentStep {
	for _, s := range r.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// StepByRole returns the first step with the given role, or nil.
func (r *AgentRun) StepByRole(role Role) *AgentStep {
	for _, s := range r.Steps {
		if s.Role == role {
			return s
		}
	}
	return nil
}

// ComputeStatus derives the aggregate run status from step statuses.
// Precedence: completed > failed > running > paused > queued. A run with one
// failed and one running step reports failed.
func (r *AgentRun) ComputeStatus() Status {
	if len(r.Steps) == 0 {
		return StatusQueued
	}
	allCompleted, allPaused := true, true
	anyFailed, anyRunning := false, false
	for _, s := range r.Steps {
		if s.Status != StatusCompleted {
			allCompleted = false
		}
		if s.Status != StatusPaused {
			allPaused = false
		}
		if s.Status == StatusFailed {
			anyFailed = true
		}
		if s.Status == StatusRunning {
			anyRunning = true
		}
	}
	switch {
	case allCompleted:
		return StatusCompleted
	case anyFailed:
		return StatusFailed
	case anyRunning:
		return StatusRunning
	case allPaused:
		return StatusPaused
	}
	return StatusQueued
}

// State is the single persisted document holding every run.
type State struct {
	Runs      []*AgentRun `json:"runs"`
	LastRunID string      `json:"lastRunId,omitempty"`
}

// RunByID returns the run with the given id, or nil.
func (st *State) RunByID(id string) *AgentRun {
	for _, r := range st.Runs {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Normalize repairs structural damage after a raw load: a nil run slice
// becomes empty and nil steps become empty so callers never see nils.
func (st *State) Normalize() {
	if st.Runs == nil {
		st.Runs = []*AgentRun{}
	}
	for _, r := range st.Runs {
		if r.Steps == nil {
			r.Steps = []*AgentStep{}
		}
	}
}

// HasDetails reports whether the step detail log carries any non-blank text.
func (s *AgentStep) HasDetails() bool {
	return strings.TrimSpace(s.Details) != ""
}
