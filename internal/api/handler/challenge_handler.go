package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

type ChallengeHandler struct {
	challenges ports.ChallengeService
}

func NewChallengeHandler(challenges ports.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges}
}

type challengeResponse struct {
	Challenge string `json:"challenge"`
	Expires   int64  `json:"expires"`
	Remaining int64  `json:"remaining"`
}

// Current returns the live challenge token for kiosk displays that render
// their own QR.
//
// @Summary      Current challenge
// @Tags         challenge
// @Produce      json
// @Success      200  {object}  challengeResponse
// @Failure      500  {object}  map[string]string
// @Router       /challenge [get]
func (h *ChallengeHandler) Current(c echo.Context) error {
	ch, err := h.challenges.Current(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, challengeResponse{
		Challenge: ch.Value,
		Expires:   ch.ExpiresAt,
		Remaining: int64(ch.Remaining(time.Now()).Seconds()),
	})
}

// QR renders the live challenge as a PNG QR code. The encoded payload is the
// same token the JSON endpoint serves, so either view scans identically.
//
// @Summary      Current challenge as QR code
// @Tags         challenge
// @Produce      png
// @Param        size  query     int  false  "image size in pixels (default 256, max 1024)"
// @Success      200   {string}  binary
// @Failure      500   {object}  map[string]string
// @Router       /challenge/qr [get]
func (h *ChallengeHandler) QR(c echo.Context) error {
	ch, err := h.challenges.Current(c.Request().Context())
	if err != nil {
		return err
	}

	size := defaultQRSize
	if raw := c.QueryParam("size"); raw != "" {
		if n, perr := strconv.Atoi(raw); perr == nil && n > 0 && n <= maxQRSize {
			size = n
		}
	}

	token, err := domain.EncodeToken(ch)
	if err != nil {
		return err
	}

	png, err := qrcode.Encode(string(token), qrcode.Medium, size)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
