package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
	"lifetrack/internal/storage"
)

const habitsCollection = "habits"

type habitRequest struct {
	Name     string     `json:"name"`
	QuitDate *time.Time `json:"quitDate"`
	QuitTime string     `json:"quitTime"`
	Type     string     `json:"type"`
}

func (h *Handlers) habits() *storage.Documents {
	return h.store.Collection(habitsCollection)
}

func (h *Handlers) ListHabits(c echo.Context) error {
	habits, err := storage.List[core.Habit](c.Request().Context(), h.habits())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, habits)
}

func (h *Handlers) CreateHabit(c echo.Context) error {
	var req habitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	var quitDate time.Time
	if req.QuitDate != nil {
		quitDate = *req.QuitDate
	}
	habit, err := core.NewHabit(req.Name, quitDate, req.QuitTime, req.Type)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.habits().Put(c.Request().Context(), habit.ID, habit); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, habit)
}

func (h *Handlers) UpdateHabit(c echo.Context) error {
	ctx := c.Request().Context()
	habit, err := storage.Get[core.Habit](ctx, h.habits(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req habitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Name != "" {
		habit.Name = req.Name
	}
	if req.QuitDate != nil {
		habit.QuitDate = *req.QuitDate
	}
	if req.QuitTime != "" {
		habit.QuitTime = req.QuitTime
	}
	if req.Type != "" {
		habit.Type = req.Type
	}
	if err := habit.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	habit.UpdatedAt = time.Now().UTC()

	if err := h.habits().Put(ctx, habit.ID, habit); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, habit)
}

func (h *Handlers) DeleteHabit(c echo.Context) error {
	if err := h.habits().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
