package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/specdev/orchestrator/internal/domain"
)

const (
	stateFileName   = "state.json"
	errorDBFileName = "error-database.json"
)

// FileStore keeps the run state and error log as two JSON documents inside a
// workspace directory, rewritten in full on each mutation.
type FileStore struct {
	dir     string
	stateFi string
	errorFi string
	logger  *zap.Logger
}

// NewFileStore creates the workspace directory if needed and seeds missing
// documents with empty defaults.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	s := &FileStore{
		dir:     dir,
		stateFi: filepath.Join(dir, stateFileName),
		errorFi: filepath.Join(dir, errorDBFileName),
		logger:  logger,
	}
	if _, err := os.Stat(s.stateFi); os.IsNotExist(err) {
		if err := writeJSON(s.stateFi, &domain.State{Runs: []*domain.AgentRun{}}); err != nil {
			return nil, fmt.Errorf("seed state document: %w", err)
		}
	}
	if _, err := os.Stat(s.errorFi); os.IsNotExist(err) {
		if err := writeJSON(s.errorFi, &domain.ErrorDatabase{Errors: []domain.AgentError{}}); err != nil {
			return nil, fmt.Errorf("seed error database: %w", err)
		}
	}
	return s, nil
}

// Dir returns the workspace directory the store lives in.
func (s *FileStore) Dir() string { return s.dir }

// ReadState loads the run-state document. Missing or corrupt content is
// replaced by an empty default rather than surfaced as an error.
func (s *FileStore) ReadState(ctx context.Context) (*domain.State, error) {
	var state domain.State
	if err := readJSON(s.stateFi, &state); err != nil {
		s.logger.Warn("state document unreadable, using empty default",
			zap.String("file", s.stateFi), zap.Error(err))
		state = domain.State{}
	}
	state.Normalize()
	return &state, nil
}

// WriteState rewrites the run-state document in full.
func (s *FileStore) WriteState(ctx context.Context, state *domain.State) error {
	if err := writeJSON(s.stateFi, state); err != nil {
		return fmt.Errorf("write state document: %w", err)
	}
	return nil
}

// ListErrors loads the error log, normalizing unreadable content to empty.
func (s *FileStore) ListErrors(ctx context.Context) ([]domain.AgentError, error) {
	db := s.readErrorDB()
	return db.Errors, nil
}

// AppendError appends one record to the error log document.
func (s *FileStore) AppendError(ctx context.Context, rec domain.AgentError) error {
	db := s.readErrorDB()
	db.Errors = append(db.Errors, rec)
	if err := writeJSON(s.errorFi, db); err != nil {
		return fmt.Errorf("write error database: %w", err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) readErrorDB() *domain.ErrorDatabase {
	var db domain.ErrorDatabase
	if err := readJSON(s.errorFi, &db); err != nil {
		s.logger.Warn("error database unreadable, using empty default",
			zap.String("file", s.errorFi), zap.Error(err))
		db = domain.ErrorDatabase{}
	}
	if db.Errors == nil {
		db.Errors = []domain.AgentError{}
	}
	return &db
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
