// Package store defines the persistence interface and implementations for
// run state and the error log.
package store

import (
	"context"

	"github.com/specdev/orchestrator/internal/domain"
)

// Store persists the run-state document and the error log. Both are whole
// documents: every mutation is a full read-modify-write cycle, so callers
// must serialize mutating calls externally.
//
// Read operations never fail on corrupt or missing documents; they return an
// empty default instead.
type Store interface {
	// ReadState loads the run-state document, normalizing damage to an
	// empty default.
	ReadState(ctx context.Context) (*domain.State, error)

	// WriteState rewrites the run-state document in full.
	WriteState(ctx context.Context, state *domain.State) error

	// ListErrors loads the error log.
	ListErrors(ctx context.Context) ([]domain.AgentError, error)

	// AppendError appends one record to the error log.
	AppendError(ctx context.Context, rec domain.AgentError) error

	// Close releases underlying resources.
	Close() error
}
