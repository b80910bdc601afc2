package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
)

type capitalRequest struct {
	TotalCapital *float64 `json:"totalCapital"`
}

type goalRequest struct {
	MonthlyGoal *float64 `json:"monthlyGoal"`
}

type entryRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (h *Handlers) GetFinance(c echo.Context) error {
	l, err := h.ledger.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handlers) GetFinanceStats(c echo.Context) error {
	stats, err := h.ledger.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handlers) SetCapital(c echo.Context) error {
	var req capitalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.TotalCapital == nil {
		return badRequest(c, "totalCapital must be a number")
	}
	l, err := h.ledger.SetCapital(c.Request().Context(), *req.TotalCapital)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handlers) SetGoal(c echo.Context) error {
	var req goalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.MonthlyGoal == nil {
		return badRequest(c, "monthlyGoal must be a number")
	}
	l, err := h.ledger.SetGoal(c.Request().Context(), *req.MonthlyGoal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handlers) AddIncome(c echo.Context) error {
	return h.addEntry(c, h.ledger.AddIncome)
}

func (h *Handlers) AddExpense(c echo.Context) error {
	return h.addEntry(c, h.ledger.AddExpense)
}

func (h *Handlers) addEntry(c echo.Context, add func(ctx context.Context, amount float64, description string) (*core.Ledger, error)) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	l, err := add(c.Request().Context(), req.Amount, req.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handlers) RemoveIncome(c echo.Context) error {
	l, err := h.ledger.RemoveIncome(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handlers) RemoveExpense(c echo.Context) error {
	l, err := h.ledger.RemoveExpense(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handlers) ClearIncome(c echo.Context) error {
	l, err := h.ledger.ClearIncome(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handlers) ClearExpenses(c echo.Context) error {
	l, err := h.ledger.ClearExpenses(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
