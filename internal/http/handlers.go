package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"lifetrack/internal/config"
	"lifetrack/internal/core"
	"lifetrack/internal/services"
	"lifetrack/internal/storage"
)

type Handlers struct {
	ledger *services.LedgerService
	store  *storage.Store

	password     string
	passwordHash string
}

func NewHandlers(cfg *config.Config, ledger *services.LedgerService, store *storage.Store) *Handlers {
	return &Handlers{
		ledger:       ledger,
		store:        store,
		password:     cfg.AppPassword,
		passwordHash: cfg.AppPasswordHash,
	}
}

func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if strings.TrimSpace(req.Password) == "" {
		return badRequest(c, "password is required")
	}
	if !h.checkPassword(req.Password) {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// requireAuth gates every API route except health and login. The secret
// travels in the X-API-Key header or, for clients that cannot set headers,
// the password query parameter.
func (h *Handlers) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
		if secret == "" {
			secret = strings.TrimSpace(c.QueryParam("password"))
		}
		if !h.checkPassword(secret) {
			return unauthorized(c)
		}
		return next(c)
	}
}

func (h *Handlers) checkPassword(candidate string) bool {
	if candidate == "" {
		return false
	}
	if h.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(candidate)) == nil
	}
	if h.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.password), []byte(candidate)) == 1
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, core.ErrRecordNotFound)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, map[string]any{"error": msg})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "error": "unauthorized"})
}

// writeError maps domain errors to the response taxonomy: validation
// sentinels become 400, not-found sentinels 404, everything else is an
// internal error.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription):
		return badRequest(c, err.Error())
	case errors.Is(err, core.ErrLedgerNotFound),
		errors.Is(err, core.ErrEntryNotFound),
		errors.Is(err, core.ErrRecordNotFound):
		return notFound(c, err.Error())
	default:
		slog.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "internal server error"})
	}
}
