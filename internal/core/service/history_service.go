package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arcadeboard/scores-api/internal/api/metrics"
	"github.com/arcadeboard/scores-api/internal/core/domain"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

type historyService struct {
	repo ports.HistoryRepository
	log  zerolog.Logger
}

// NewHistoryService returns the consumer used by the score-change dispatcher.
func NewHistoryService(repo ports.HistoryRepository, log zerolog.Logger) ports.HistoryService {
	return &historyService{repo: repo, log: log}
}

// Record persists a single change to the audit trail.
func (s *historyService) Record(ctx context.Context, change domain.ScoreChange) error {
	if err := s.repo.Insert(ctx, &change); err != nil {
		metrics.HistoryErrorsTotal.Inc()
		return fmt.Errorf("record score change: %w", err)
	}
	metrics.HistoryRecordedTotal.Inc()

	s.log.Debug().
		Str("user_id", change.UserID).
		Str("updated_by", change.UpdatedBy).
		Msg("score change recorded")
	return nil
}
