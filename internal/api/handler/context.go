package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklock/worklock/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - employee role requires a non-empty wallet; every employee operation is
//     keyed by wallet, so a token without one is unusable. Reject with 401.
func ctxClaims(c echo.Context) (email, role, wallet string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ = c.Get("email").(string)
	wallet, _ = c.Get("wallet").(string)
	if role == domain.RoleEmployee && wallet == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing wallet identity")
	}

	return email, role, wallet, nil
}
