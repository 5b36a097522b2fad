package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/worklock/worklock/internal/core/ports"
)

type AttendanceHandler struct {
	attendance ports.AttendanceService
}

func NewAttendanceHandler(attendance ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type punchRequest struct {
	Token string `json:"token" validate:"required"`
}

type punchResponse struct {
	Hash   string `json:"hash"`
	Ledger uint64 `json:"ledger"`
}

// CheckIn submits a scanned challenge token as the day's opening punch.
//
// @Summary      Check in
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body      punchRequest  true  "Scanned challenge token"
// @Success      200   {object}  punchResponse
// @Failure      400   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/attendance/check-in [post]
// @Security     BearerAuth
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	return h.punch(c, h.attendance.CheckIn)
}

// CheckOut submits a scanned challenge token as the day's closing punch.
//
// @Summary      Check out
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body      punchRequest  true  "Scanned challenge token"
// @Success      200   {object}  punchResponse
// @Failure      400   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/attendance/check-out [post]
// @Security     BearerAuth
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	return h.punch(c, h.attendance.CheckOut)
}

func (h *AttendanceHandler) punch(c echo.Context, submit func(context.Context, string, []byte) (*ports.SubmitReceipt, error)) error {
	_, _, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req punchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	receipt, err := submit(c.Request().Context(), wallet, []byte(req.Token))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, punchResponse{Hash: receipt.Hash, Ledger: receipt.Ledger})
}

// History returns the caller's recent attendance records plus hour aggregates.
//
// @Summary      Attendance history
// @Tags         attendance
// @Produce      json
// @Param        days  query     int  false  "window in days (default 30)"
// @Success      200   {object}  ports.AttendanceHistory
// @Failure      401   {object}  map[string]string
// @Router       /v1/attendance/history [get]
// @Security     BearerAuth
func (h *AttendanceHandler) History(c echo.Context) error {
	_, _, wallet, err := ctxClaims(c)
	if err != nil {
		return err
	}

	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		if n, perr := strconv.Atoi(raw); perr == nil && n > 0 {
			days = n
		}
	}

	history, err := h.attendance.History(c.Request().Context(), wallet, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}
