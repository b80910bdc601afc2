package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
	"lifetrack/internal/storage"
)

const (
	sportCollection         = "sport_sessions"
	sportSettingsCollection = "sport_settings"
	sportSettingsID         = "default"
)

type sportSessionRequest struct {
	Type     string     `json:"type"`
	Duration float64    `json:"duration"`
	Calories float64    `json:"calories"`
	Distance float64    `json:"distance"`
	Notes    string     `json:"notes"`
	Date     *time.Time `json:"date"`
}

type sportSettingsRequest struct {
	MonthlyGoal int             `json:"monthlyGoal"`
	WeightData  core.WeightData `json:"weightData"`
}

type sportStats struct {
	SessionsThisMonth int     `json:"sessionsThisMonth"`
	TotalDuration     float64 `json:"totalDuration"`
	TotalCalories     float64 `json:"totalCalories"`
	TotalDistance     float64 `json:"totalDistance"`
	MonthlyGoal       int     `json:"monthlyGoal"`
	GoalProgress      float64 `json:"goalProgress"`
}

func (h *Handlers) sport() *storage.Documents {
	return h.store.Collection(sportCollection)
}

func (h *Handlers) sportSettings() *storage.Documents {
	return h.store.Collection(sportSettingsCollection)
}

func (h *Handlers) ListSportSessions(c echo.Context) error {
	sessions, err := storage.List[core.SportSession](c.Request().Context(), h.sport())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *Handlers) CreateSportSession(c echo.Context) error {
	var req sportSessionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}
	session, err := core.NewSportSession(req.Type, req.Duration, req.Calories, req.Distance, req.Notes, date)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.sport().Put(c.Request().Context(), session.ID, session); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *Handlers) DeleteSportSession(c echo.Context) error {
	if err := h.sport().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *Handlers) loadSportSettings(c echo.Context) (core.SportSettings, error) {
	ctx := c.Request().Context()
	settings, err := storage.Get[core.SportSettings](ctx, h.sportSettings(), sportSettingsID)
	if err == nil {
		return settings, nil
	}
	if !isRecordNotFound(err) {
		return core.SportSettings{}, err
	}
	settings = core.DefaultSportSettings()
	if err := h.sportSettings().Put(ctx, sportSettingsID, settings); err != nil {
		return core.SportSettings{}, err
	}
	return settings, nil
}

func (h *Handlers) GetSportSettings(c echo.Context) error {
	settings, err := h.loadSportSettings(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *Handlers) UpdateSportSettings(c echo.Context) error {
	settings, err := h.loadSportSettings(c)
	if err != nil {
		return writeError(c, err)
	}

	var req sportSettingsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.MonthlyGoal != 0 {
		settings.MonthlyGoal = req.MonthlyGoal
	}
	if req.WeightData.CurrentWeight != 0 {
		settings.WeightData.CurrentWeight = req.WeightData.CurrentWeight
	}
	if req.WeightData.TargetWeight != 0 {
		settings.WeightData.TargetWeight = req.WeightData.TargetWeight
	}
	if err := settings.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := h.sportSettings().Put(c.Request().Context(), sportSettingsID, settings); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *Handlers) GetSportStats(c echo.Context) error {
	settings, err := h.loadSportSettings(c)
	if err != nil {
		return writeError(c, err)
	}
	sessions, err := storage.List[core.SportSession](c.Request().Context(), h.sport())
	if err != nil {
		return writeError(c, err)
	}

	now := time.Now().UTC()
	stats := sportStats{MonthlyGoal: settings.MonthlyGoal}
	for _, s := range sessions {
		d := s.Date.UTC()
		if d.Year() != now.Year() || d.Month() != now.Month() {
			continue
		}
		stats.SessionsThisMonth++
		stats.TotalDuration += s.Duration
		stats.TotalCalories += s.Calories
		stats.TotalDistance += s.Distance
	}
	if settings.MonthlyGoal > 0 {
		stats.GoalProgress = float64(stats.SessionsThisMonth) / float64(settings.MonthlyGoal) * 100
		if stats.GoalProgress > 100 {
			stats.GoalProgress = 100
		}
	}
	return c.JSON(http.StatusOK, stats)
}
