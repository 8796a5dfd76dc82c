// Package service implements the run state machine: run creation, step
// lifecycle transitions, aggregate status derivation, and the automation
// hooks that couple steps to the knowledge base and error log.
package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/specdev/orchestrator/internal/knowledge"
	"github.com/specdev/orchestrator/internal/store"
)

// Options are the orchestrator-wide defaults, overridable per startRun call.
type Options struct {
	AutoResearchPrestep   bool
	EnableAutomationHooks bool
}

// DefaultOptions enables both automation behaviors.
func DefaultOptions() Options {
	return Options{AutoResearchPrestep: true, EnableAutomationHooks: true}
}

// Service orchestrates runs against an injected store and knowledge base.
// Operations are synchronous read-modify-write cycles over the whole state
// document; callers must not issue concurrent mutating calls.
type Service struct {
	store     store.Store
	knowledge *knowledge.Service
	opts      Options
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a service. A nil logger falls back to a no-op logger.
func New(st store.Store, kb *knowledge.Service, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     st,
		knowledge: kb,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// SetOptions replaces the orchestrator-wide defaults.
func (s *Service) SetOptions(opts Options) {
	s.opts = opts
}

// Knowledge exposes the knowledge base for the transport layer.
func (s *Service) Knowledge() *knowledge.Service {
	return s.knowledge
}

func newID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}
