package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/worklock/worklock/internal/core/ports"
)

// RosterHandler serves the admin views over the employee roster.
type RosterHandler struct {
	auth       ports.AuthService
	attendance ports.AttendanceService
}

func NewRosterHandler(auth ports.AuthService, attendance ports.AttendanceService) *RosterHandler {
	return &RosterHandler{auth: auth, attendance: attendance}
}

// Employees lists every registered employee with their wallet.
//
// @Summary      List employees
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.RosterEntry
// @Router       /admin/employees [get]
// @Security     BearerAuth
func (h *RosterHandler) Employees(c echo.Context) error {
	entries, err := h.auth.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Attendance aggregates worked hours per employee over a recent window.
// Employees whose ledger reads fail are left out rather than failing the
// whole view.
//
// @Summary      Roster attendance summary
// @Tags         admin
// @Produce      json
// @Param        days  query    int  false  "window in days (default 14)"
// @Success      200   {array}  ports.RosterHours
// @Router       /admin/attendance [get]
// @Security     BearerAuth
func (h *RosterHandler) Attendance(c echo.Context) error {
	roster, err := h.auth.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}

	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		if n, perr := strconv.Atoi(raw); perr == nil && n > 0 {
			days = n
		}
	}

	summary, err := h.attendance.RosterSummary(c.Request().Context(), roster, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
