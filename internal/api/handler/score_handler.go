package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arcadeboard/scores-api/internal/core/domain"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

type ScoreHandler struct {
	scoreService ports.ScoreService
}

func NewScoreHandler(scoreService ports.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// List returns every user's scores.
//
// @Summary      List scores
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.ScoreSummary
// @Failure      401  {object}  errorResponse
// @Router       /users/scores [get]
func (h *ScoreHandler) List(c echo.Context) error {
	scores, err := h.scoreService.ListScores(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if scores == nil {
		scores = []ports.ScoreSummary{}
	}
	return c.JSON(http.StatusOK, scores)
}

// Get returns a single user's scores.
//
// @Summary      Get score
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  ports.ScoreSummary
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/scores/{id} [get]
func (h *ScoreHandler) Get(c echo.Context) error {
	summary, err := h.scoreService.GetScore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Update sets the supplied score fields of a user.
//
// @Summary      Update score
// @Tags         scores
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string              true  "User ID"
// @Param        body  body  updateScoreRequest  true  "Score fields to set"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/scores/{id} [put]
func (h *ScoreHandler) Update(c echo.Context) error {
	caller, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req updateScoreRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err = h.scoreService.UpdateScore(c.Request().Context(), ports.UpdateScoreInput{
		ID:     c.Param("id"),
		Caller: caller,
		Update: req.toDomain(),
	})
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// History returns the most recent score changes of a user, newest first.
//
// @Summary      Score history
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "User ID"
// @Param        limit  query     int     false  "Maximum entries (default 20, max 100)"
// @Success      200    {array}   domain.ScoreChange
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/scores/{id}/history [get]
func (h *ScoreHandler) History(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	changes, err := h.scoreService.History(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return httpError(err)
	}
	if changes == nil {
		changes = []*domain.ScoreChange{}
	}
	return c.JSON(http.StatusOK, changes)
}

// decodeJSON reads the request body as JSON regardless of Content-Type.
// An empty body leaves dst untouched.
func decodeJSON(c echo.Context, dst any) error {
	err := c.Echo().JSONSerializer.Deserialize(c, dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
}
