package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/specdev/orchestrator/internal/domain"
	"github.com/specdev/orchestrator/internal/service"
)

// StartRun starts a run for a (feature, goal) pair.
// POST /v1/runs
func (h *Handler) StartRun(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.StartRunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Feature == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "feature is required"})
	}
	if req.Goal == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "goal is required"})
	}
	if req.Options != nil {
		for _, role := range req.Options.Roles {
			if !role.Valid() {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown role: " + string(role)})
			}
		}
	}

	run, err := h.service.StartRun(ctx, req.Feature, req.Goal, req.Options)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}

// ListRuns lists all runs.
// GET /v1/runs
func (h *Handler) ListRuns(c echo.Context) error {
	runs, err := h.service.ListRuns(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"runs": runs})
}

// GetRun gets a single run by id.
// GET /v1/runs/:run_id
func (h *Handler) GetRun(c echo.Context) error {
	run, err := h.service.GetRun(c.Request().Context(), c.Param("run_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	}
	return c.JSON(http.StatusOK, run)
}

// GetLastRun returns the run named by the last-run pointer.
// GET /v1/runs/last
func (h *Handler) GetLastRun(c echo.Context) error {
	run, err := h.service.LastRun(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no runs yet"})
	}
	return c.JSON(http.StatusOK, run)
}

// StepAction applies a lifecycle action to a step.
// POST /v1/runs/:run_id/steps/:step_id/action
func (h *Handler) StepAction(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.StepActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	status, ok := req.Action.Status()
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown action: " + string(req.Action)})
	}

	run, err := h.service.UpdateStepStatus(ctx, c.Param("run_id"), c.Param("step_id"), status, &service.StepUpdate{
		Details: req.Details,
		Error:   req.Error,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run or step not found"})
	}
	return c.JSON(http.StatusOK, run)
}

// AddNote appends a note to a step's detail log.
// POST /v1/runs/:run_id/steps/:step_id/notes
func (h *Handler) AddNote(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Note == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "note is required"})
	}

	run, err := h.service.AddStepNote(ctx, c.Param("run_id"), c.Param("step_id"), req.Note)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run or step not found"})
	}
	return c.JSON(http.StatusOK, run)
}

// UpdateRoles merges or replaces a run's role set.
// PUT /v1/runs/:run_id/roles
func (h *Handler) UpdateRoles(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.UpdateRolesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	for _, role := range req.Roles {
		if !role.Valid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown role: " + string(role)})
		}
	}
	merge := true
	if req.Merge != nil {
		merge = *req.Merge
	}

	run, err := h.service.UpdateRunRoles(ctx, c.Param("run_id"), req.Roles, merge)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	}
	return c.JSON(http.StatusOK, run)
}

// GetPersonas returns a role→persona map for a run's steps.
// GET /v1/runs/:run_id/personas
func (h *Handler) GetPersonas(c echo.Context) error {
	personas, err := h.service.GetPersonasForRun(c.Request().Context(), c.Param("run_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"personas": personas})
}

// ListErrors lists the full error log.
// GET /v1/errors
func (h *Handler) ListErrors(c echo.Context) error {
	errs, err := h.service.ListErrors(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"errors": errs})
}
