package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
	"lifetrack/internal/storage"
)

const ideasCollection = "ideas"

type ideaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

type ideaStatusRequest struct {
	Status string `json:"status"`
}

type ideaPriorityRequest struct {
	Priority string `json:"priority"`
}

func (h *Handlers) ideas() *storage.Documents {
	return h.store.Collection(ideasCollection)
}

func (h *Handlers) ListIdeas(c echo.Context) error {
	ideas, err := storage.List[core.Idea](c.Request().Context(), h.ideas())
	if err != nil {
		return writeError(c, err)
	}

	category := c.QueryParam("category")
	status := c.QueryParam("status")
	priority := c.QueryParam("priority")
	out := make([]core.Idea, 0, len(ideas))
	for _, i := range ideas {
		if category != "" && i.Category != category {
			continue
		}
		if status != "" && i.Status != status {
			continue
		}
		if priority != "" && i.Priority != priority {
			continue
		}
		out = append(out, i)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreateIdea(c echo.Context) error {
	var req ideaRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	idea, err := core.NewIdea(req.Title, req.Description, req.Category, req.Priority, req.Tags)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.ideas().Put(c.Request().Context(), idea.ID, idea); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, idea)
}

func (h *Handlers) UpdateIdea(c echo.Context) error {
	ctx := c.Request().Context()
	idea, err := storage.Get[core.Idea](ctx, h.ideas(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req ideaRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Title != "" {
		idea.Title = req.Title
	}
	if req.Description != "" {
		idea.Description = req.Description
	}
	if req.Category != "" {
		idea.Category = req.Category
	}
	if req.Priority != "" {
		idea.Priority = req.Priority
	}
	if req.Tags != nil {
		idea.Tags = req.Tags
	}
	if err := idea.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	idea.UpdatedAt = time.Now().UTC()

	if err := h.ideas().Put(ctx, idea.ID, idea); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, idea)
}

func (h *Handlers) SetIdeaStatus(c echo.Context) error {
	ctx := c.Request().Context()
	idea, err := storage.Get[core.Idea](ctx, h.ideas(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req ideaStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	idea.Status = req.Status
	if err := idea.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	idea.UpdatedAt = time.Now().UTC()

	if err := h.ideas().Put(ctx, idea.ID, idea); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, idea)
}

func (h *Handlers) SetIdeaPriority(c echo.Context) error {
	ctx := c.Request().Context()
	idea, err := storage.Get[core.Idea](ctx, h.ideas(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req ideaPriorityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	idea.Priority = req.Priority
	if err := idea.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	idea.UpdatedAt = time.Now().UTC()

	if err := h.ideas().Put(ctx, idea.ID, idea); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, idea)
}

func (h *Handlers) DeleteIdea(c echo.Context) error {
	if err := h.ideas().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
