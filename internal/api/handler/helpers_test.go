package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/arcadeboard/scores-api/internal/api/middleware"
	"github.com/arcadeboard/scores-api/internal/core/domain"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// run invokes h and renders any returned error the way the router would.
func run(c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}
}

func withParam(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func withCaller(c echo.Context, username string) echo.Context {
	c.Set(middleware.ContextUsername, username)
	return c
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

type stubScoreService struct {
	listFn    func(ctx context.Context) ([]ports.ScoreSummary, error)
	getFn     func(ctx context.Context, id string) (*ports.ScoreSummary, error)
	updateFn  func(ctx context.Context, in ports.UpdateScoreInput) error
	historyFn func(ctx context.Context, id string, limit int) ([]*domain.ScoreChange, error)
}

func (s *stubScoreService) ListScores(ctx context.Context) ([]ports.ScoreSummary, error) {
	return s.listFn(ctx)
}

func (s *stubScoreService) GetScore(ctx context.Context, id string) (*ports.ScoreSummary, error) {
	return s.getFn(ctx, id)
}

func (s *stubScoreService) UpdateScore(ctx context.Context, in ports.UpdateScoreInput) error {
	return s.updateFn(ctx, in)
}

func (s *stubScoreService) History(ctx context.Context, id string, limit int) ([]*domain.ScoreChange, error) {
	return s.historyFn(ctx, id, limit)
}
