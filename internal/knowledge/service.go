// Package knowledge persists research notes as markdown files, one file per
// item, addressable by id and searchable by substring.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/specdev/orchestrator/internal/domain"
)

const (
	noteExt          = ".md"
	searchResultCap  = 20
	maxSlugLength    = 80
	metadataDivider  = "---"
	fallbackSlugName = "note"
)

var (
	slugInvalidRe  = regexp.MustCompile(`(?i)[^a-z0-9\-_]+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
	titlePrefixRe  = regexp.MustCompile(`^#\s*`)
)

// Service owns a directory of markdown notes. Unreadable files are skipped
// during listing and search rather than aborting the operation.
type Service struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates the note directory if needed.
func NewService(dir string, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create knowledge dir: %w", err)
	}
	return &Service{dir: dir, logger: logger, now: time.Now}, nil
}

// Dir returns the directory notes are stored in.
func (s *Service) Dir() string { return s.dir }

// Slugify reduces a title to a lowercase filename-safe slug, truncated to 80
// characters. Empty results fall back to "note".
func Slugify(title string) string {
	safe := slugInvalidRe.ReplaceAllString(title, "-")
	safe = slugCollapseRe.ReplaceAllString(safe, "-")
	safe = strings.ToLower(safe)
	if len(safe) > maxSlugLength {
		safe = safe[:maxSlugLength]
	}
	if safe == "" {
		return fallbackSlugName
	}
	return safe
}

// SaveResearch writes a new note whose header enumerates creation time and
// any back-references in meta, followed by a divider and the raw content.
// An existing id is never overwritten; on a same-millisecond collision the
// timestamp prefix is advanced until the filename is free.
func (s *Service) SaveResearch(title, content string, meta *domain.KnowledgeMeta) (*domain.KnowledgeItem, error) {
	now := s.now()

	var header strings.Builder
	header.WriteString("# " + title + "\n\n")
	header.WriteString("- Created: " + now.UTC().Format(time.RFC3339) + "\n")
	if meta != nil {
		if meta.RunID != "" {
			header.WriteString("- Run: " + meta.RunID + "\n")
		}
		if meta.StepID != "" {
			header.WriteString("- Step: " + meta.StepID + "\n")
		}
		if meta.ErrorID != "" {
			header.WriteString("- Error: " + meta.ErrorID + "\n")
		}
		if len(meta.Tags) > 0 {
			header.WriteString("- Tags: " + strings.Join(meta.Tags, ", ") + "\n")
		}
	}
	header.WriteString("\n" + metadataDivider + "\n\n")

	slug := Slugify(title)
	var id, file string
	for ts := now.UnixMilli(); ; ts++ {
		id = fmt.Sprintf("%d-%s", ts, slug)
		file = filepath.Join(s.dir, id+noteExt)
		f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return nil, fmt.Errorf("create note: %w", err)
		}
		if _, err := f.WriteString(header.String() + content); err != nil {
			f.Close()
			return nil, fmt.Errorf("write note: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close note: %w", err)
		}
		break
	}

	item := &domain.KnowledgeItem{
		ID:        id,
		Title:     title,
		File:      file,
		CreatedAt: now,
	}
	if meta != nil {
		item.Tags = meta.Tags
		item.RelatedRunID = meta.RunID
		item.RelatedStepID = meta.StepID
		item.RelatedErrID = meta.ErrorID
	}
	s.logger.Debug("saved knowledge note", zap.String("id", id), zap.String("title", title))
	return item, nil
}

// List returns all notes sorted most-recent first. Titles come from the
// first line of each note, falling back to the filename.
func (s *Service) List() []domain.KnowledgeItem {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return []domain.KnowledgeItem{}
	}
	items := make([]domain.KnowledgeItem, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), noteExt) {
			continue
		}
		item, ok := s.readItem(e.Name(), "")
		if ok {
			items = append(items, item)
		}
	}
	sortItems(items)
	return items
}

// Get returns a note by bare id or by a path ending in the note extension.
func (s *Service) Get(idOrPath string) *domain.KnowledgeNote {
	file := idOrPath
	if !strings.HasSuffix(idOrPath, noteExt) {
		file = filepath.Join(s.dir, idOrPath+noteExt)
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	content := string(raw)
	title := firstLineTitle(content)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(file), noteExt)
	}
	return &domain.KnowledgeNote{Title: title, Content: content, File: file}
}

// Search returns up to 20 notes whose content or filename contains query,
// case-insensitively, most-recent first. A blank query lists everything.
func (s *Service) Search(query string) []domain.KnowledgeItem {
	if strings.TrimSpace(query) == "" {
		return s.List()
	}
	q := strings.ToLower(query)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return []domain.KnowledgeItem{}
	}
	results := make([]domain.KnowledgeItem, 0)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), noteExt) {
			continue
		}
		item, ok := s.readItem(e.Name(), q)
		if ok {
			results = append(results, item)
		}
	}
	sortItems(results)
	if len(results) > searchResultCap {
		results = results[:searchResultCap]
	}
	return results
}

// readItem loads one note entry. With a non-empty query it returns ok=false
// unless the lowercased content or filename matches. Per-file read errors
// skip the file.
func (s *Service) readItem(name, query string) (domain.KnowledgeItem, bool) {
	path := filepath.Join(s.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("skipping unreadable note", zap.String("file", path), zap.Error(err))
		return domain.KnowledgeItem{}, false
	}
	content := string(raw)
	if query != "" &&
		!strings.Contains(strings.ToLower(content), query) &&
		!strings.Contains(strings.ToLower(name), query) {
		return domain.KnowledgeItem{}, false
	}
	id := strings.TrimSuffix(name, noteExt)
	title := firstLineTitle(content)
	if title == "" {
		title = id
	}
	return domain.KnowledgeItem{
		ID:        id,
		Title:     title,
		File:      path,
		CreatedAt: s.createdAt(id, path),
	}, true
}

// createdAt derives creation time from the id's millisecond prefix, falling
// back to file mtime.
func (s *Service) createdAt(id, path string) time.Time {
	prefix, _, found := strings.Cut(id, "-")
	if found {
		if ms, err := strconv.ParseInt(prefix, 10, 64); err == nil {
			return time.UnixMilli(ms)
		}
	}
	if info, err := os.Stat(path); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}

func firstLineTitle(content string) string {
	first, _, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(titlePrefixRe.ReplaceAllString(first, ""))
}

func sortItems(items []domain.KnowledgeItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}
