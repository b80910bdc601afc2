package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
	"lifetrack/internal/storage"
)

const tasksCollection = "tasks"

type taskRequest struct {
	Text     string `json:"text"`
	Period   string `json:"period"`
	Category string `json:"category"`
}

func (h *Handlers) tasks() *storage.Documents {
	return h.store.Collection(tasksCollection)
}

func (h *Handlers) ListTasks(c echo.Context) error {
	tasks, err := storage.List[core.Task](c.Request().Context(), h.tasks())
	if err != nil {
		return writeError(c, err)
	}

	period := c.QueryParam("period")
	completed := c.QueryParam("completed")
	out := make([]core.Task, 0, len(tasks))
	for _, t := range tasks {
		if period != "" && t.Period != period {
			continue
		}
		if completed != "" && t.Completed != (completed == "true") {
			continue
		}
		out = append(out, t)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreateTask(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	task, err := core.NewTask(req.Text, req.Period, req.Category)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.tasks().Put(c.Request().Context(), task.ID, task); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handlers) UpdateTask(c echo.Context) error {
	ctx := c.Request().Context()
	task, err := storage.Get[core.Task](ctx, h.tasks(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Text != "" {
		task.Text = req.Text
	}
	if req.Period != "" {
		task.Period = req.Period
	}
	if req.Category != "" {
		task.Category = req.Category
	}
	if err := task.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	task.UpdatedAt = time.Now().UTC()

	if err := h.tasks().Put(ctx, task.ID, task); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handlers) ToggleTask(c echo.Context) error {
	ctx := c.Request().Context()
	task, err := storage.Get[core.Task](ctx, h.tasks(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	task.Completed = !task.Completed
	task.UpdatedAt = time.Now().UTC()
	if err := h.tasks().Put(ctx, task.ID, task); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handlers) DeleteTask(c echo.Context) error {
	if err := h.tasks().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// DeleteTasks bulk-deletes tasks matching the period/completed filters.
// Without filters it clears the whole collection.
func (h *Handlers) DeleteTasks(c echo.Context) error {
	ctx := c.Request().Context()
	period := c.QueryParam("period")
	completed := c.QueryParam("completed")

	if period == "" && completed == "" {
		n, err := h.tasks().DeleteAll(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"deleted": n})
	}

	tasks, err := storage.List[core.Task](ctx, h.tasks())
	if err != nil {
		return writeError(c, err)
	}
	var deleted int64
	for _, t := range tasks {
		if period != "" && t.Period != period {
			continue
		}
		if completed != "" && t.Completed != (completed == "true") {
			continue
		}
		if err := h.tasks().Delete(ctx, t.ID); err != nil {
			return writeError(c, err)
		}
		deleted++
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": deleted})
}
