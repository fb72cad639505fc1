package ports

import (
	"context"

	"github.com/arcadeboard/scores-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateScore sets only the fields present in update.
	UpdateScore(ctx context.Context, id string, update domain.ScoreUpdate) error
}

// HistoryRepository stores the audit trail of applied score updates.
type HistoryRepository interface {
	Insert(ctx context.Context, change *domain.ScoreChange) error
	// ListByUser returns at most limit entries for userID, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoreChange, error)
}
