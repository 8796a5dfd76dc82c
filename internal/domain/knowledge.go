package domain

import "time"

// KnowledgeItem is a persisted markdown research/documentation note.
// The id is a millisecond timestamp prefix plus a slugified title, which
// keeps filenames unique and sortable by creation time.
type KnowledgeItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	File          string    `json:"file"`
	CreatedAt     time.Time `json:"createdAt"`
	Tags          []string  `json:"tags,omitempty"`
	RelatedRunID  string    `json:"relatedRunId,omitempty"`
	RelatedStepID string    `json:"relatedStepId,omitempty"`
	RelatedErrID  string    `json:"relatedErrorId,omitempty"`
}

// KnowledgeMeta carries optional back-references attached to a saved note.
type KnowledgeMeta struct {
	RunID   string   `json:"runId,omitempty"`
	StepID  string   `json:"stepId,omitempty"`
	ErrorID string   `json:"errorId,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// KnowledgeNote is the full content of a single note as read from disk.
type KnowledgeNote struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	File    string `json:"file"`
}
