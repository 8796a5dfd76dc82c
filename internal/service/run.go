package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/specdev/orchestrator/internal/domain"
	"github.com/specdev/orchestrator/internal/roles"
)

// StartRun creates a run for a (feature, goal) pair. The role roster comes
// from opts.Roles or keyword inference; every role becomes one queued step
// stamped with the run-start time. With auto-research enabled the Research
// step is pre-started with a knowledge prefill. The new run becomes the
// last-run pointer.
func (s *Service) StartRun(ctx context.Context, feature, goal string, opts *domain.StartRunOptions) (*domain.AgentRun, error) {
	now := s.now()

	var overrides []domain.Role
	if opts != nil {
		overrides = opts.Roles
	}
	roster := roles.ComputeDefaultRoles(goal, overrides)

	steps := make([]*domain.AgentStep, len(roster))
	for i, role := range roster {
		steps[i] = &domain.AgentStep{
			ID:        newID("step"),
			Role:      role,
			Summary:   roles.Summary(role),
			Status:    domain.StatusQueued,
			StartedAt: now,
		}
	}

	run := &domain.AgentRun{
		ID:        newID("run"),
		Feature:   feature,
		Goal:      goal,
		Status:    domain.StatusQueued,
		StartedAt: now,
		Steps:     steps,
	}
	run.Record(now, domain.EventRunStarted, "", "", goal)

	autoResearch := s.opts.AutoResearchPrestep
	if opts != nil && opts.AutoResearchPrestep != nil {
		autoResearch = *opts.AutoResearchPrestep
	}
	if opts != nil && opts.EnableAutomationHooks != nil {
		s.opts.EnableAutomationHooks = *opts.EnableAutomationHooks
	}
	if autoResearch {
		if research := run.StepByRole(domain.RoleResearch); research != nil {
			research.Details = s.PrefillResearchFromKnowledge(goal)
			research.Status = domain.StatusRunning
			if research.StartedAt.IsZero() {
				research.StartedAt = now
			}
			run.Status = run.ComputeStatus()
			run.Record(now, domain.EventStepStatusChanged, research.ID, research.Role, string(domain.StatusRunning))
		}
	}

	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	state.Runs = append(state.Runs, run)
	state.LastRunID = run.ID
	if err := s.store.WriteState(ctx, state); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}

	s.logger.Info("run started",
		zap.String("run_id", run.ID),
		zap.String("feature", feature),
		zap.Int("steps", len(run.Steps)))
	return run, nil
}

// ListRuns returns every persisted run.
func (s *Service) ListRuns(ctx context.Context) ([]*domain.AgentRun, error) {
	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return state.Runs, nil
}

// GetRun returns a run by id, or nil when unknown.
func (s *Service) GetRun(ctx context.Context, runID string) (*domain.AgentRun, error) {
	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return state.RunByID(runID), nil
}

// LastRun returns the run the last-run pointer names, or nil.
func (s *Service) LastRun(ctx context.Context) (*domain.AgentRun, error) {
	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if state.LastRunID == "" {
		return nil, nil
	}
	return state.RunByID(state.LastRunID), nil
}

// ListErrors returns the full error log.
func (s *Service) ListErrors(ctx context.Context) ([]domain.AgentError, error) {
	return s.store.ListErrors(ctx)
}

// GetPersonasForRun synthesizes a persona per step role. Unknown runs yield
// an empty map.
func (s *Service) GetPersonasForRun(ctx context.Context, runID string) (map[domain.Role]string, error) {
	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	personas := map[domain.Role]string{}
	run := state.RunByID(runID)
	if run == nil {
		return personas, nil
	}
	for _, step := range run.Steps {
		personas[step.Role] = roles.DerivePersona(step.Role, run.Goal)
	}
	return personas, nil
}

// UpdateRunRoles merges new roles into a run (merge=true) or replaces the
// whole step list (merge=false). Either way a Research step is injected at
// the front when missing. Unknown runs are a silent no-op returning nil.
func (s *Service) UpdateRunRoles(ctx context.Context, runID string, newRoles []domain.Role, merge bool) (*domain.AgentRun, error) {
	state, err := s.store.ReadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	run := state.RunByID(runID)
	if run == nil {
		return nil, nil
	}

	now := s.now()
	existing := make(map[domain.Role]bool, len(run.Steps))
	for _, step := range run.Steps {
		existing[step.Role] = true
	}

	toAdd := newRoles
	if merge {
		toAdd = nil
		for _, role := range newRoles {
			if !existing[role] {
				toAdd = append(toAdd, role)
			}
		}
	} else {
		run.Steps = []*domain.AgentStep{}
	}
	for _, role := range toAdd {
		run.Steps = append(run.Steps, &domain.AgentStep{
			ID:        newID("step"),
			Role:      role,
			Summary:   roles.Summary(role),
			Status:    domain.StatusQueued,
			StartedAt: now,
		})
	}

	if run.StepByRole(domain.RoleResearch) == nil {
		research := &domain.AgentStep{
			ID:        newID("step"),
			Role:      domain.RoleResearch,
			Summary:   roles.Summary(domain.RoleResearch),
			Status:    domain.StatusQueued,
			StartedAt: now,
		}
		run.Steps = append([]*domain.AgentStep{research}, run.Steps...)
	}
	run.Record(now, domain.EventRolesUpdated, "", "", fmt.Sprintf("merge=%t", merge))

	if err := s.store.WriteState(ctx, state); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	return run, nil
}
