package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/specdev/orchestrator/internal/domain"
)

// SearchKnowledge searches notes, or lists everything for a blank query.
// GET /v1/knowledge?query=
func (h *Handler) SearchKnowledge(c echo.Context) error {
	items := h.service.Knowledge().Search(c.QueryParam("query"))
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// GetKnowledge returns one note by id.
// GET /v1/knowledge/:id
func (h *Handler) GetKnowledge(c echo.Context) error {
	note := h.service.Knowledge().Get(c.Param("id"))
	if note == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "knowledge item not found"})
	}
	return c.JSON(http.StatusOK, note)
}

// SaveKnowledge saves a new note.
// POST /v1/knowledge
func (h *Handler) SaveKnowledge(c echo.Context) error {
	var req domain.SaveKnowledgeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content is required"})
	}

	item, err := h.service.Knowledge().SaveResearch(req.Title, req.Content, req.Meta)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, item)
}
