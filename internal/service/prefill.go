package service

import (
	"path/filepath"
	"strings"
)

const (
	noKnowledgeMessage = "No internal knowledge found"
	prefillItemCap     = 10
)

// PrefillResearchFromKnowledge searches the knowledge base for the goal text
// and renders either a fixed "nothing found" message or a reference block
// listing up to 10 matched notes. Pure given store contents; no mutation.
func (s *Service) PrefillResearchFromKnowledge(goal string) string {
	items := s.knowledge.Search(goal)
	if len(items) == 0 {
		return noKnowledgeMessage + ". Prepare to research trusted sources.\n"
	}
	if len(items) > prefillItemCap {
		items = items[:prefillItemCap]
	}
	lines := make([]string, 0, len(items)+3)
	lines = append(lines, "Internal knowledge references:")
	for _, item := range items {
		lines = append(lines, "- "+item.Title+" ("+filepath.Base(item.File)+")")
	}
	lines = append(lines, "", "Prepare to validate findings and cite external sources as needed.")
	return strings.Join(lines, "\n")
}
