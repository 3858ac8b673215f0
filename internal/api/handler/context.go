package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the session claims injected by the Auth middleware and
// performs a fast-fail check before handling: a non-empty user id proves the
// middleware ran.
func ctxIdentity(c echo.Context) (id, email, username string, err error) {
	id, _ = c.Get("user_id").(string)
	if id == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ = c.Get("email").(string)
	username, _ = c.Get("username").(string)
	return id, email, username, nil
}
