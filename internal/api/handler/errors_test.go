package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/arcadeboard/scores-api/internal/core/domain"
)

func TestHTTPError_MapsDomainErrors(t *testing.T) {
	cases := map[error]int{
		domain.ErrUserNotFound:       http.StatusNotFound,
		domain.ErrInvalidScore:       http.StatusUnprocessableEntity,
		domain.ErrForbidden:          http.StatusForbidden,
		domain.ErrUserExists:         http.StatusConflict,
		domain.ErrInvalidCredentials: http.StatusUnauthorized,
	}
	for err, want := range cases {
		wrapped := fmt.Errorf("repo: %w", err)
		var he *echo.HTTPError
		if !errors.As(httpError(wrapped), &he) || he.Code != want {
			t.Fatalf("%v: expected %d, got %v", err, want, httpError(wrapped))
		}
	}
}

func TestHTTPError_PassesUnknownErrors(t *testing.T) {
	boom := errors.New("boom")
	if got := httpError(boom); got != boom {
		t.Fatalf("expected error unchanged, got %v", got)
	}
}
