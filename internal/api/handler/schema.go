package handler

import "github.com/arcadeboard/scores-api/internal/core/domain"

type registerRequest struct {
	Username  string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"required,max=64"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string       `json:"authToken"`
	User      *domain.User `json:"user"`
}

// updateScoreRequest fields are all optional; at least one must be present.
type updateScoreRequest struct {
	Score      *int `json:"score,omitempty" validate:"omitempty,gte=0"`
	Level1     *int `json:"level1,omitempty" validate:"omitempty,gte=0"`
	TotalScore *int `json:"totalScore,omitempty" validate:"omitempty,gte=0"`
}

func (r updateScoreRequest) toDomain() domain.ScoreUpdate {
	return domain.ScoreUpdate{Score: r.Score, Level1: r.Level1, TotalScore: r.TotalScore}
}

type errorResponse struct {
	Message string `json:"message"`
}
