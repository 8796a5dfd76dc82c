// Package v1 provides the HTTP command surface consumed by the editor
// extension shell.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/specdev/orchestrator/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the command routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Run API
	e.POST("/v1/runs", h.StartRun)
	e.GET("/v1/runs", h.ListRuns)
	e.GET("/v1/runs/last", h.GetLastRun)
	e.GET("/v1/runs/:run_id", h.GetRun)
	e.GET("/v1/runs/:run_id/personas", h.GetPersonas)
	e.PUT("/v1/runs/:run_id/roles", h.UpdateRoles)
	e.POST("/v1/runs/:run_id/steps/:step_id/action", h.StepAction)
	e.POST("/v1/runs/:run_id/steps/:step_id/notes", h.AddNote)

	// Error log API
	e.GET("/v1/errors", h.ListErrors)

	// Knowledge API
	e.GET("/v1/knowledge", h.SearchKnowledge)
	e.GET("/v1/knowledge/:id", h.GetKnowledge)
	e.POST("/v1/knowledge", h.SaveKnowledge)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
