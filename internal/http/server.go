// Package http exposes the JSON API over echo.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"lifetrack/internal/config"
	"lifetrack/internal/services"
	"lifetrack/internal/storage"
)

type Server struct {
	echo *echo.Echo
}

func NewServer(cfg *config.Config, ledger *services.LedgerService, store *storage.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, map[string]any{"error": http.StatusText(he.Code)})
			return
		}
		slog.ErrorContext(c.Request().Context(), "Unhandled request error",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]any{"error": "internal server error"})
	}

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(60))))

	h := NewHandlers(cfg, ledger, store)
	registerRoutes(e, h)

	return &Server{echo: e}
}

func registerRoutes(e *echo.Echo, h *Handlers) {
	e.GET("/api/health", h.Health)
	e.POST("/api/auth/login", h.Login)

	api := e.Group("/api", h.requireAuth)

	api.GET("/finance", h.GetFinance)
	api.GET("/finance/stats", h.GetFinanceStats)
	api.PATCH("/finance/capital", h.SetCapital)
	api.PATCH("/finance/goal", h.SetGoal)
	api.POST("/finance/income", h.AddIncome)
	api.POST("/finance/expense", h.AddExpense)
	api.DELETE("/finance/income/:id", h.RemoveIncome)
	api.DELETE("/finance/expense/:id", h.RemoveExpense)
	api.DELETE("/finance/income", h.ClearIncome)
	api.DELETE("/finance/expense", h.ClearExpenses)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.PATCH("/tasks/:id/toggle", h.ToggleTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.DELETE("/tasks", h.DeleteTasks)

	api.GET("/habits", h.ListHabits)
	api.POST("/habits", h.CreateHabit)
	api.PUT("/habits/:id", h.UpdateHabit)
	api.DELETE("/habits/:id", h.DeleteHabit)

	api.GET("/ideas", h.ListIdeas)
	api.POST("/ideas", h.CreateIdea)
	api.PUT("/ideas/:id", h.UpdateIdea)
	api.PATCH("/ideas/:id/status", h.SetIdeaStatus)
	api.PATCH("/ideas/:id/priority", h.SetIdeaPriority)
	api.DELETE("/ideas/:id", h.DeleteIdea)

	api.GET("/team", h.ListTeam)
	api.POST("/team", h.CreateTeamMember)
	api.GET("/team/:id", h.GetTeamMember)
	api.PUT("/team/:id", h.UpdateTeamMember)
	api.DELETE("/team/:id", h.DeleteTeamMember)

	api.GET("/projects", h.ListProjects)
	api.POST("/projects", h.CreateProject)
	api.PUT("/projects/:id", h.UpdateProject)
	api.PATCH("/projects/:id/progress", h.SetProjectProgress)
	api.PATCH("/projects/:id/status", h.SetProjectStatus)
	api.DELETE("/projects/:id", h.DeleteProject)

	api.GET("/roadmap/:userId", h.GetRoadmap)
	api.PUT("/roadmap/:userId/steps", h.ReplaceRoadmapSteps)
	api.PATCH("/roadmap/:userId/steps/:stepId/toggle", h.ToggleRoadmapStep)
	api.DELETE("/roadmap/:userId", h.ResetRoadmap)

	api.GET("/sport", h.ListSportSessions)
	api.POST("/sport", h.CreateSportSession)
	api.DELETE("/sport/:id", h.DeleteSportSession)
	api.GET("/sport/settings", h.GetSportSettings)
	api.PUT("/sport/settings", h.UpdateSportSettings)
	api.GET("/sport/stats", h.GetSportStats)

	api.GET("/progress/:userId", h.GetProgress)
	api.POST("/progress/:userId/days", h.MarkProgressDay)
	api.DELETE("/progress/:userId/days/:day", h.UnmarkProgressDay)
	api.DELETE("/progress/:userId", h.ResetProgress)
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			slog.InfoContext(c.Request().Context(), "Request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds())
			return err
		}
	}
}

// Start blocks serving on the given address until Shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
