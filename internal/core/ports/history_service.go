package ports

import (
	"context"

	"github.com/arcadeboard/scores-api/internal/core/domain"
)

// HistoryService records score changes consumed from the dispatcher.
type HistoryService interface {
	Record(ctx context.Context, change domain.ScoreChange) error
}
