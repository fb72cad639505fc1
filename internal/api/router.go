package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/arcadeboard/scores-api/docs"
	"github.com/arcadeboard/scores-api/internal/api/handler"
	"github.com/arcadeboard/scores-api/internal/api/middleware"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

const defaultBodyLimit = "1M"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Log          zerolog.Logger
	Tokens       middleware.TokenParser
	AuthService  ports.AuthService
	ScoreService ports.ScoreService
	// Health lists the dependencies pinged by the readiness probe.
	Health map[string]handler.PingFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title                       Scores API
// @version                     1.0
// @description                 User score board protected by bearer tokens.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.BodyLimit(defaultBodyLimit))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	authHandler := handler.NewAuthHandler(deps.AuthService)
	scoreHandler := handler.NewScoreHandler(deps.ScoreService)
	requireAuth := middleware.Auth(deps.Tokens)

	// --- Ops ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api/docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	api.GET("", healthHandler.Ack)
	api.GET("/health/ready", healthHandler.Readiness)

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Scores (bearer token per route, so unknown paths still 404) ---
	api.GET("/users/scores", scoreHandler.List, requireAuth)
	api.GET("/users/scores/:id", scoreHandler.Get, requireAuth)
	api.PUT("/users/scores/:id", scoreHandler.Update, requireAuth)
	api.GET("/users/scores/:id/history", scoreHandler.History, requireAuth)

	return e
}
