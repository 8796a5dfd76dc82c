package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specdev/orchestrator/internal/domain"
)

func TestSaveAndGetKnowledgeHandlers(t *testing.T) {
	handler, _ := newTestHandler(t)
	e := echo.New()

	c, rec := postJSON(t, e, domain.SaveKnowledgeRequest{
		Title:   "Auth Token Rotation",
		Content: "Rotate refresh tokens on every use.",
		Meta:    &domain.KnowledgeMeta{Tags: []string{"auth"}},
	}, "/v1/knowledge", nil, nil)

	require.NoError(t, handler.SaveKnowledge(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var item domain.KnowledgeItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Contains(t, item.ID, "auth-token-rotation")

	t.Run("get by id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		getCtx := e.NewContext(req, rec)
		getCtx.SetPath("/v1/knowledge/:id")
		getCtx.SetParamNames("id")
		getCtx.SetParamValues(item.ID)

		require.NoError(t, handler.GetKnowledge(getCtx))
		assert.Equal(t, http.StatusOK, rec.Code)

		var note domain.KnowledgeNote
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
		assert.Contains(t, note.Content, "Rotate refresh tokens")
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		getCtx := e.NewContext(req, rec)
		getCtx.SetPath("/v1/knowledge/:id")
		getCtx.SetParamNames("id")
		getCtx.SetParamValues("does-not-exist")

		require.NoError(t, handler.GetKnowledge(getCtx))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		c, rec := postJSON(t, e, domain.SaveKnowledgeRequest{Content: "body"}, "/v1/knowledge", nil, nil)
		require.NoError(t, handler.SaveKnowledge(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSearchKnowledgeHandler(t *testing.T) {
	handler, _ := newTestHandler(t)
	e := echo.New()

	for _, title := range []string{"Caching Strategy", "Login Flow"} {
		c, rec := postJSON(t, e, domain.SaveKnowledgeRequest{Title: title, Content: "notes about " + title}, "/v1/knowledge", nil, nil)
		require.NoError(t, handler.SaveKnowledge(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/knowledge?query=caching", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.SearchKnowledge(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []domain.KnowledgeItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Caching Strategy", resp.Items[0].Title)
}

func TestHealthHandler(t *testing.T) {
	handler, _ := newTestHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.Health(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
