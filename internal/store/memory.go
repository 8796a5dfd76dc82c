package store

import (
	"context"
	"encoding/json"

	"github.com/specdev/orchestrator/internal/domain"
)

// Memory is an in-memory Store for tests and embedding. Documents are
// deep-copied through JSON on read and write to mirror the file store's
// serialization boundary.
type Memory struct {
	state  domain.State
	errors []domain.AgentError
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{state: domain.State{Runs: []*domain.AgentRun{}}}
}

func (m *Memory) ReadState(ctx context.Context) (*domain.State, error) {
	out := &domain.State{}
	roundTrip(&m.state, out)
	out.Normalize()
	return out, nil
}

func (m *Memory) WriteState(ctx context.Context, state *domain.State) error {
	var copied domain.State
	roundTrip(state, &copied)
	m.state = copied
	return nil
}

func (m *Memory) ListErrors(ctx context.Context) ([]domain.AgentError, error) {
	out := make([]domain.AgentError, len(m.errors))
	copy(out, m.errors)
	return out, nil
}

func (m *Memory) AppendError(ctx context.Context, rec domain.AgentError) error {
	m.errors = append(m.errors, rec)
	return nil
}

func (m *Memory) Close() error { return nil }

func roundTrip(src, dst any) {
	raw, _ := json.Marshal(src)
	_ = json.Unmarshal(raw, dst)
}
