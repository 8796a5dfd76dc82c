package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specdev/orchestrator/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), ".specdev"), nil)
	require.NoError(t, err)
	return s
}

func TestFileStoreSeedsDocuments(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	_, err := os.Stat(filepath.Join(s.Dir(), stateFileName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Dir(), errorDBFileName))
	assert.NoError(t, err)

	state, err := s.ReadState(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Runs)
	assert.NotNil(t, state.Runs)
}

func TestFileStoreStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	state := &domain.State{
		Runs: []*domain.AgentRun{{
			ID:        "run_1",
			Feature:   "login",
			Goal:      "implement login",
			Status:    domain.StatusQueued,
			StartedAt: now,
			Steps: []*domain.AgentStep{{
				ID:        "step_1",
				Role:      domain.RoleResearch,
				Summary:   "research",
				Status:    domain.StatusQueued,
				StartedAt: now,
			}},
		}},
		LastRunID: "run_1",
	}
	require.NoError(t, s.WriteState(ctx, state))

	got, err := s.ReadState(ctx)
	require.NoError(t, err)
	require.Len(t, got.Runs, 1)
	assert.Equal(t, "run_1", got.LastRunID)
	assert.Equal(t, "login", got.Runs[0].Feature)
	require.Len(t, got.Runs[0].Steps, 1)
	assert.Equal(t, domain.RoleResearch, got.Runs[0].Steps[0].Role)
	assert.True(t, got.Runs[0].StartedAt.Equal(now))
}

func TestFileStoreCorruptStateNormalized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), stateFileName), []byte("{not json"), 0o644))

	state, err := s.ReadState(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Runs)
	assert.NotNil(t, state.Runs)
}

func TestFileStoreMissingStateNormalized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	require.NoError(t, os.Remove(filepath.Join(s.Dir(), stateFileName)))

	state, err := s.ReadState(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Runs)
}

func TestFileStoreErrorLogAppendOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	first := domain.AgentError{ID: "err_1", RunID: "run_1", Message: "build broke", Severity: domain.SeverityMedium, Timestamp: time.Now()}
	second := domain.AgentError{ID: "err_2", RunID: "run_1", Message: "tests red", Severity: domain.SeverityHigh, Timestamp: time.Now()}
	require.NoError(t, s.AppendError(ctx, first))
	require.NoError(t, s.AppendError(ctx, second))

	errs, err := s.ListErrors(ctx)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "err_1", errs[0].ID)
	assert.Equal(t, "err_2", errs[1].ID)
}

func TestFileStoreCorruptErrorLogNormalized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), errorDBFileName), []byte("[]"), 0o644))

	errs, err := s.ListErrors(ctx)
	require.NoError(t, err)
	assert.Empty(t, errs)

	// Appending after corruption starts from an empty log.
	require.NoError(t, s.AppendError(ctx, domain.AgentError{ID: "err_1", RunID: "r", Message: "m"}))
	errs, err = s.ListErrors(ctx)
	require.NoError(t, err)
	assert.Len(t, errs, 1)
}
