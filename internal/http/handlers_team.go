package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"lifetrack/internal/core"
	"lifetrack/internal/storage"
)

const teamCollection = "team"

type teamMemberRequest struct {
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Department string   `json:"department"`
	Status     string   `json:"status"`
	Skills     []string `json:"skills"`
	Notes      string   `json:"notes"`
	Image      string   `json:"image"`
}

func (h *Handlers) team() *storage.Documents {
	return h.store.Collection(teamCollection)
}

func (h *Handlers) ListTeam(c echo.Context) error {
	members, err := storage.List[core.TeamMember](c.Request().Context(), h.team())
	if err != nil {
		return writeError(c, err)
	}

	department := c.QueryParam("department")
	status := c.QueryParam("status")
	query := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	out := make([]core.TeamMember, 0, len(members))
	for _, m := range members {
		if department != "" && m.Department != department {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		if query != "" && !memberMatches(m, query) {
			continue
		}
		out = append(out, m)
	}
	return c.JSON(http.StatusOK, out)
}

func memberMatches(m core.TeamMember, query string) bool {
	if strings.Contains(strings.ToLower(m.Name), query) ||
		strings.Contains(strings.ToLower(m.Role), query) {
		return true
	}
	for _, s := range m.Skills {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

func (h *Handlers) GetTeamMember(c echo.Context) error {
	member, err := storage.Get[core.TeamMember](c.Request().Context(), h.team(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

func (h *Handlers) CreateTeamMember(c echo.Context) error {
	var req teamMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	member, err := core.NewTeamMember(req.Name, req.Role, req.Email, req.Phone,
		req.Department, req.Skills, req.Notes, req.Image)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if req.Status != "" {
		member.Status = req.Status
		if err := member.Validate(); err != nil {
			return badRequest(c, err.Error())
		}
	}
	if err := h.team().Put(c.Request().Context(), member.ID, member); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *Handlers) UpdateTeamMember(c echo.Context) error {
	ctx := c.Request().Context()
	member, err := storage.Get[core.TeamMember](ctx, h.team(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req teamMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Role != "" {
		member.Role = req.Role
	}
	if req.Email != "" {
		member.Email = req.Email
	}
	if req.Phone != "" {
		member.Phone = req.Phone
	}
	if req.Department != "" {
		member.Department = req.Department
	}
	if req.Status != "" {
		member.Status = req.Status
	}
	if req.Skills != nil {
		member.Skills = req.Skills
	}
	if req.Notes != "" {
		member.Notes = req.Notes
	}
	if req.Image != "" {
		member.Image = req.Image
	}
	if err := member.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	member.UpdatedAt = time.Now().UTC()

	if err := h.team().Put(ctx, member.ID, member); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

func (h *Handlers) DeleteTeamMember(c echo.Context) error {
	if err := h.team().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
