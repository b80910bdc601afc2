package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
	"lifetrack/internal/storage"
)

const progressCollection = "progress"

type progressDayRequest struct {
	Day string `json:"day"`
}

type progressResponse struct {
	*core.Progress
	DaysRemaining int `json:"daysRemaining"`
}

func (h *Handlers) progress() *storage.Documents {
	return h.store.Collection(progressCollection)
}

func (h *Handlers) loadOrCreateProgress(c echo.Context) (*core.Progress, error) {
	ctx := c.Request().Context()
	userID := c.Param("userId")
	p, err := storage.Get[*core.Progress](ctx, h.progress(), userID)
	if err == nil {
		return p, nil
	}
	if !isRecordNotFound(err) {
		return nil, err
	}
	p = core.NewProgress(userID)
	if err := h.progress().Put(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func progressView(p *core.Progress) progressResponse {
	remaining := int(time.Until(p.TargetDate).Hours() / 24)
	if remaining < 0 {
		remaining = 0
	}
	return progressResponse{Progress: p, DaysRemaining: remaining}
}

func (h *Handlers) GetProgress(c echo.Context) error {
	p, err := h.loadOrCreateProgress(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, progressView(p))
}

func (h *Handlers) MarkProgressDay(c echo.Context) error {
	p, err := h.loadOrCreateProgress(c)
	if err != nil {
		return writeError(c, err)
	}

	var req progressDayRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	day := strings.TrimSpace(req.Day)
	if day == "" {
		return badRequest(c, "day is required")
	}
	p.MarkDay(day)

	if err := h.progress().Put(c.Request().Context(), p.UserID, p); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, progressView(p))
}

func (h *Handlers) UnmarkProgressDay(c echo.Context) error {
	p, err := h.loadOrCreateProgress(c)
	if err != nil {
		return writeError(c, err)
	}
	p.UnmarkDay(c.Param("day"))
	if err := h.progress().Put(c.Request().Context(), p.UserID, p); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, progressView(p))
}

func (h *Handlers) ResetProgress(c echo.Context) error {
	p, err := h.loadOrCreateProgress(c)
	if err != nil {
		return writeError(c, err)
	}
	p.Reset()
	if err := h.progress().Put(c.Request().Context(), p.UserID, p); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, progressView(p))
}
