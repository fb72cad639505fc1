package ports

import (
	"context"
	"time"

	"github.com/arcadeboard/scores-api/internal/core/domain"
)

// ScoreSummary is the public view of a user's scores. It never carries
// credentials, so it is also the shape kept in the cache.
type ScoreSummary struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Score      int       `json:"score"`
	Level1     int       `json:"level1"`
	TotalScore int       `json:"totalScore"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpdateScoreInput carries a score update together with the caller identity.
type UpdateScoreInput struct {
	ID     string
	Caller string // token subject
	Update domain.ScoreUpdate
}

// ScoreService defines the use cases behind /api/users/scores.
type ScoreService interface {
	ListScores(ctx context.Context) ([]ScoreSummary, error)
	GetScore(ctx context.Context, id string) (*ScoreSummary, error)
	UpdateScore(ctx context.Context, input UpdateScoreInput) error
	History(ctx context.Context, id string, limit int) ([]*domain.ScoreChange, error)
}

// ScoreCache holds the rendered leaderboard between writes. Every read
// reports the cache generation it observed; Invalidate starts a new
// generation, so a list rendered before an update can never be stored
// over it.
type ScoreCache interface {
	// GetScores reports ok=false on a cache miss.
	GetScores(ctx context.Context) (scores []ScoreSummary, gen int64, ok bool, err error)
	// SetScores stores scores for generation gen only. Writes for a
	// superseded generation are never served.
	SetScores(ctx context.Context, gen int64, scores []ScoreSummary) error
	Invalidate(ctx context.Context) error
}

// ChangePublisher hands applied updates off for asynchronous recording.
type ChangePublisher interface {
	Publish(change domain.ScoreChange)
}
