package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
	"lifetrack/internal/storage"
)

const (
	projectsCollection = "projects"
	roadmapsCollection = "roadmaps"
)

type projectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type projectProgressRequest struct {
	Progress int `json:"progress"`
}

type projectStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) projects() *storage.Documents {
	return h.store.Collection(projectsCollection)
}

func (h *Handlers) ListProjects(c echo.Context) error {
	projects, err := storage.List[core.Project](c.Request().Context(), h.projects())
	if err != nil {
		return writeError(c, err)
	}

	status := c.QueryParam("status")
	out := make([]core.Project, 0, len(projects))
	for _, p := range projects {
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	var startDate time.Time
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	project, err := core.NewProject(req.Name, req.Description, req.Priority, startDate, req.EndDate)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.projects().Put(c.Request().Context(), project.ID, project); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *Handlers) UpdateProject(c echo.Context) error {
	ctx := c.Request().Context()
	project, err := storage.Get[core.Project](ctx, h.projects(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Priority != "" {
		project.Priority = req.Priority
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if err := project.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	project.UpdatedAt = time.Now().UTC()

	if err := h.projects().Put(ctx, project.ID, project); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handlers) SetProjectProgress(c echo.Context) error {
	ctx := c.Request().Context()
	project, err := storage.Get[core.Project](ctx, h.projects(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req projectProgressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	project.Progress = req.Progress
	if err := project.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	// Reaching 100 completes the project.
	if project.Progress == 100 {
		project.Status = "completed"
	}
	project.UpdatedAt = time.Now().UTC()

	if err := h.projects().Put(ctx, project.ID, project); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handlers) SetProjectStatus(c echo.Context) error {
	ctx := c.Request().Context()
	project, err := storage.Get[core.Project](ctx, h.projects(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req projectStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	project.Status = req.Status
	if err := project.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	project.UpdatedAt = time.Now().UTC()

	if err := h.projects().Put(ctx, project.ID, project); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handlers) DeleteProject(c echo.Context) error {
	if err := h.projects().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// Roadmap: one per-user document, created on first read.

type roadmapStepsRequest struct {
	Steps []core.RoadmapStep `json:"steps"`
}

func (h *Handlers) roadmaps() *storage.Documents {
	return h.store.Collection(roadmapsCollection)
}

func (h *Handlers) loadOrCreateRoadmap(c echo.Context) (*core.Roadmap, error) {
	ctx := c.Request().Context()
	userID := c.Param("userId")
	roadmap, err := storage.Get[*core.Roadmap](ctx, h.roadmaps(), userID)
	if err == nil {
		return roadmap, nil
	}
	if !isRecordNotFound(err) {
		return nil, err
	}
	roadmap = core.NewRoadmap(userID)
	if err := h.roadmaps().Put(ctx, userID, roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

func (h *Handlers) GetRoadmap(c echo.Context) error {
	roadmap, err := h.loadOrCreateRoadmap(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, roadmap)
}

func (h *Handlers) ReplaceRoadmapSteps(c echo.Context) error {
	roadmap, err := h.loadOrCreateRoadmap(c)
	if err != nil {
		return writeError(c, err)
	}

	var req roadmapStepsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	roadmap.ReplaceSteps(req.Steps)

	if err := h.roadmaps().Put(c.Request().Context(), roadmap.UserID, roadmap); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, roadmap)
}

func (h *Handlers) ToggleRoadmapStep(c echo.Context) error {
	roadmap, err := h.loadOrCreateRoadmap(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := roadmap.ToggleStep(c.Param("stepId")); err != nil {
		return writeError(c, err)
	}
	if err := h.roadmaps().Put(c.Request().Context(), roadmap.UserID, roadmap); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, roadmap)
}

func (h *Handlers) ResetRoadmap(c echo.Context) error {
	roadmap, err := h.loadOrCreateRoadmap(c)
	if err != nil {
		return writeError(c, err)
	}
	roadmap.Reset()
	if err := h.roadmaps().Put(c.Request().Context(), roadmap.UserID, roadmap); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, roadmap)
}
