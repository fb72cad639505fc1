package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcadeboard/scores-api/internal/api/middleware"
)

// ctxUsername returns the token subject injected by the Auth middleware.
// An empty subject means the middleware did not run: reject with 401.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(middleware.ContextUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
