package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specdev/orchestrator/internal/domain"
)

func TestResearchCompletionSavesKnowledge(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	run, err := svc.StartRun(ctx, "login", "implement OAuth login with JWT", nil)
	require.NoError(t, err)
	research := run.StepByRole(domain.RoleResearch)

	updated, err := svc.UpdateStepStatus(ctx, run.ID, research.ID, domain.StatusCompleted, &StepUpdate{
		Details: "Use PKCE; rotate refresh tokens.",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	items := svc.Knowledge().List()
	require.Len(t, items, 1)
	assert.Equal(t, "Research Findings - login", items[0].Title)

	note := svc.Knowledge().Get(items[0].ID)
	require.NotNil(t, note)
	assert.Contains(t, note.Content, "Use PKCE; rotate refresh tokens.")
	assert.Contains(t, note.Content, "- Run: "+run.ID)
	assert.Contains(t, note.Content, "- Step: "+research.ID)
	assert.Contains(t, note.Content, "- Tags: research, login")

	docs := updated.StepByRole(domain.RoleDocs)
	require.NotNil(t, docs)
	assert.Contains(t, docs.Details, "[Research Saved] Research Findings - login → "+items[0].ID+".md")
}

func TestResearchCompletionWithoutDetailsSavesNothing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	run, err := svc.StartRun(ctx, "login", "implement login", &domain.StartRunOptions{
		AutoResearchPrestep: boolPtr(false),
	})
	require.NoError(t, err)
	research := run.StepByRole(domain.RoleResearch)

	_, err = svc.UpdateStepStatus(ctx, run.ID, research.ID, domain.StatusCompleted, nil)
	require.NoError(t, err)
	assert.Empty(t, svc.Knowledge().List())
}

func TestResearchCompletionHooksDisabled(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	svc.SetOptions(Options{AutoResearchPrestep: true, EnableAutomationHooks: false})

	run, err := svc.StartRun(ctx, "login", "implement login", nil)
	require.NoError(t, err)
	research := run.StepByRole(domain.RoleResearch)

	_, err = svc.UpdateStepStatus(ctx, run.ID, research.ID, domain.StatusCompleted, &StepUpdate{Details: "findings"})
	require.NoError(t, err)
	assert.Empty(t, svc.Knowledge().List())
}

func TestDocsStartWithoutKnowledgeRequestsResearchInputs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	run, err := svc.StartRun(ctx, "billing", "add invoicing", &domain.StartRunOptions{
		AutoResearchPrestep: boolPtr(false),
	})
	require.NoError(t, err)
	docs := run.StepByRole(domain.RoleDocs)

	updated, err := svc.UpdateStepStatus(ctx, run.ID, docs.ID, domain.StatusRunning, nil)
	require.NoError(t, err)

	assert.Contains(t, updated.StepByID(docs.ID).Details, "No internal knowledge found")
	research := updated.StepByRole(domain.RoleResearch)
	assert.Contains(t, research.Details, "[Docs Request] Prepare documentation inputs for feature: billing")
}

func TestDocsStartWithKnowledgePrefillsReferences(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	goal := "add invoicing"
	_, err := svc.Knowledge().SaveResearch("Invoicing Patterns", "notes covering: add invoicing flows", nil)
	require.NoError(t, err)

	run, err := svc.StartRun(ctx, "billing", goal, &domain.StartRunOptions{
		AutoResearchPrestep: boolPtr(false),
	})
	require.NoError(t, err)
	docs := run.StepByRole(domain.RoleDocs)

	updated, err := svc.UpdateStepStatus(ctx, run.ID, docs.ID, domain.StatusRunning, nil)
	require.NoError(t, err)

	details := updated.StepByID(docs.ID).Details
	assert.Contains(t, details, "Internal knowledge references:")
	assert.Contains(t, details, "Invoicing Patterns")
	assert.Empty(t, updated.StepByRole(domain.RoleResearch).Details,
		"no docs request when internal knowledge exists")
}

func TestPrefillResearchFromKnowledge(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("empty store", func(t *testing.T) {
		msg := svc.PrefillResearchFromKnowledge("anything")
		assert.Contains(t, msg, "No internal knowledge found")
	})

	t.Run("lists at most ten references", func(t *testing.T) {
		for i := 0; i < 12; i++ {
			_, err := svc.Knowledge().SaveResearch("note", "content mentioning sharedterm", nil)
			require.NoError(t, err)
		}
		block := svc.PrefillResearchFromKnowledge("sharedterm")
		refLines := 0
		for _, line := range strings.Split(block, "\n") {
			if strings.HasPrefix(line, "- ") {
				refLines++
			}
		}
		assert.Equal(t, 10, refLines)
		assert.Contains(t, block, "Prepare to validate findings and cite external sources as needed.")
	})
}
