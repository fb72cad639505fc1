package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcadeboard/scores-api/internal/core/domain"
)

// httpError converts known domain errors into echo HTTP errors. Anything
// else is returned unchanged and ends up as a logged 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found").SetInternal(err)
	case errors.Is(err, domain.ErrInvalidScore):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "access forbidden").SetInternal(err)
	case errors.Is(err, domain.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, "user already exists").SetInternal(err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials").SetInternal(err)
	}
	return err
}
