package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/specdev/orchestrator/internal/domain"
	"github.com/specdev/orchestrator/internal/roles"
)

// StepUpdate carries the optional payload of a status transition.
type StepUpdate struct {
	Details string
	Error   *domain.ErrorInput
}

// UpdateStepStatus applies one step lifecycle transition and every
// automation hook it triggers, then recomputes the aggregate run status.
// The whole mutation is persisted in a single state write. Unknown run or
// step ids are a silent no-op returning nil.
func (s *Service) UpdateStepStatus(ctx context.Context, runID, stepID string, status domain.Status, update *StepUpdate) (*domain.AgentRun, error) {
	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	run := state.RunByID(runID)
	if run == nil {
		return nil, nil
	}
	step := run.StepByID(stepID)
	if step == nil {
		return nil, nil
	}
	if update == nil {
		update = &StepUpdate{}
	}

	now := s.now()
	step.Status = status
	if update.Details != "" {
		step.AppendDetails(update.Details)
	}
	if status == domain.StatusRunning && step.StartedAt.IsZero() {
		step.StartedAt = now
	}
	if status == domain.StatusCompleted || status == domain.StatusFailed || status == domain.StatusPaused {
		finished := now
		step.FinishedAt = &finished
	}
	run.Record(now, domain.EventStepStatusChanged, step.ID, step.Role, string(status))

	if status == domain.StatusFailed && update.Error != nil && update.Error.Message != "" {
		if err := s.recordFailure(ctx, run, step, update.Error, now); err != nil {
			return nil, err
		}
	}

	run.Status = run.ComputeStatus()
	if run.Status == domain.StatusCompleted {
		finished := now
		run.FinishedAt = &finished
	}

	if s.opts.EnableAutomationHooks && step.Role == domain.RoleDocs && status == domain.StatusRunning {
		s.hookDocsStarted(run, step, now)
	}
	if s.opts.EnableAutomationHooks && step.Role == domain.RoleResearch && status == domain.StatusCompleted {
		s.hookResearchCompleted(run, step, now)
	}

	if err := s.store.WriteState(ctx, state); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	return run, nil
}

// recordFailure appends an AgentError to the error log, marks the step with
// the error id, and runs the Dev-failure research hook.
func (s *Service) recordFailure(ctx context.Context, run *domain.AgentRun, step *domain.AgentStep, input *domain.ErrorInput, now time.Time) error {
	severity := input.Severity
	if severity == "" {
		severity = domain.SeverityMedium
	}
	rec := domain.AgentError{
		ID:         newID("err"),
		Timestamp:  now,
		RunID:      run.ID,
		StepID:     step.ID,
		Role:       step.Role,
		Message:    input.Message,
		Details:    input.Details,
		File:       input.File,
		Severity:   severity,
		Suggestion: input.Suggestion,
	}
	if err := s.store.AppendError(ctx, rec); err != nil {
		return fmt.Errorf("append error record: %w", err)
	}
	step.AppendDetails("ErrorId: " + rec.ID)
	run.Record(now, domain.EventErrorRecorded, step.ID, step.Role, rec.ID)

	// When Dev fails, route the error context to Research.
	if s.opts.EnableAutomationHooks && step.Role == domain.RoleDev {
		note := fmt.Sprintf("Investigate error %s: %s", rec.ID, rec.Message)
		if rec.Details != "" {
			note += "\nDetails: " + rec.Details
		}
		if research := run.StepByRole(domain.RoleResearch); research != nil {
			research.AppendDetails("[AutoHook] " + note)
			run.Record(now, domain.EventHookResearchLink, research.ID, research.Role, rec.ID)
		} else {
			research := &domain.AgentStep{
				ID:        newID("step"),
				Role:      domain.RoleResearch,
				Summary:   roles.Summary(domain.RoleResearch),
				Details:   "[AutoHook] " + note,
				Status:    domain.StatusQueued,
				StartedAt: now,
			}
			run.Steps = append([]*domain.AgentStep{research}, run.Steps...)
			run.Record(now, domain.EventHookResearchLink, research.ID, research.Role, rec.ID)
		}
	}

	s.logger.Warn("step failed",
		zap.String("run_id", run.ID),
		zap.String("step_id", step.ID),
		zap.String("role", string(step.Role)),
		zap.String("error_id", rec.ID))
	return nil
}

// hookDocsStarted prefills a starting Docs step with knowledge references.
// If nothing internal was found, Research is asked to prepare documentation
// inputs.
func (s *Service) hookDocsStarted(run *domain.AgentRun, step *domain.AgentStep, now time.Time) {
	refs := s.PrefillResearchFromKnowledge(run.Goal)
	if strings.TrimSpace(refs) == "" {
		return
	}
	step.AppendDetails(refs)
	run.Record(now, domain.EventHookDocsPrefill, step.ID, step.Role, "")
	if !strings.Contains(strings.ToLower(refs), strings.ToLower(noKnowledgeMessage)) {
		return
	}
	if research := run.StepByRole(domain.RoleResearch); research != nil {
		research.AppendDetails("[Docs Request] Prepare documentation inputs for feature: " + run.Feature)
		run.Record(now, domain.EventHookDocsRequest, research.ID, research.Role, run.Feature)
	}
}

// hookResearchCompleted persists a completed Research step's findings as a
// knowledge item and notifies the Docs step.
func (s *Service) hookResearchCompleted(run *domain.AgentRun, step *domain.AgentStep, now time.Time) {
	if !step.HasDetails() {
		return
	}
	item, err := s.knowledge.SaveResearch(
		"Research Findings - "+run.Feature,
		step.Details,
		&domain.KnowledgeMeta{
			RunID:  run.ID,
			StepID: step.ID,
			Tags:   []string{"research", run.Feature},
		},
	)
	if err != nil {
		s.logger.Warn("failed to persist research findings",
			zap.String("run_id", run.ID), zap.Error(err))
		return
	}
	run.Record(now, domain.EventHookResearchSaved, step.ID, step.Role, item.ID)
	if docs := run.StepByRole(domain.RoleDocs); docs != nil {
		docs.AppendDetails(fmt.Sprintf("[Research Saved] %s → %s\n", item.Title, filepath.Base(item.File)))
	}
}

// AddStepNote appends a timestamped note to a step's detail log. Unknown
// run or step ids are a silent no-op returning nil.
func (s *Service) AddStepNote(ctx context.Context, runID, stepID, note string) (*domain.AgentRun, error) {
	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	run := state.RunByID(runID)
	if run == nil {
		return nil, nil
	}
	step := run.StepByID(stepID)
	if step == nil {
		return nil, nil
	}
	now := s.now()
	step.AppendDetails(fmt.Sprintf("[Note %s] %s", now.Format(time.DateTime), note))
	run.Record(now, domain.EventNoteAdded, step.ID, step.Role, note)
	if err := s.store.WriteState(ctx, state); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	return run, nil
}
