package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Relays contract rejection reasons verbatim; the caller needs the exact
//     ledger wording ("already checked in today") to act on it.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Ledger pipeline rejections carry the contract or gateway reason.
	var simErr *domain.SimulationRejectedError
	if errors.As(err, &simErr) {
		return http.StatusUnprocessableEntity, simErr.Reason
	}
	var subErr *domain.SubmissionRejectedError
	if errors.As(err, &subErr) {
		return http.StatusBadGateway, subErr.Reason
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMalformedToken):
		return http.StatusBadRequest, "malformed challenge token"
	case errors.Is(err, domain.ErrExpiredChallenge):
		return http.StatusGone, "challenge expired"
	case errors.Is(err, domain.ErrAccountUnreachable):
		return http.StatusServiceUnavailable, "ledger account unreachable"
	case errors.Is(err, domain.ErrSigningDeclined):
		return http.StatusServiceUnavailable, "signing declined"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrWalletTaken):
		return http.StatusConflict, "wallet already registered for role"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
