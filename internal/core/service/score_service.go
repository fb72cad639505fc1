package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arcadeboard/scores-api/internal/api/metrics"
	"github.com/arcadeboard/scores-api/internal/core/domain"
	"github.com/arcadeboard/scores-api/internal/core/ports"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type ScoreService struct {
	users     ports.UserRepository
	history   ports.HistoryRepository
	cache     ports.ScoreCache
	publisher ports.ChangePublisher
	ownerOnly bool
	log       zerolog.Logger
}

// ScoreOptions carries the optional collaborators of ScoreService.
// A nil Cache disables caching; a nil Publisher disables history recording.
type ScoreOptions struct {
	Cache     ports.ScoreCache
	Publisher ports.ChangePublisher
	// OwnerOnly rejects updates whose caller is not the record's username.
	OwnerOnly bool
}

func NewScoreService(users ports.UserRepository, history ports.HistoryRepository, opts ScoreOptions, log zerolog.Logger) *ScoreService {
	return &ScoreService{
		users:     users,
		history:   history,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		ownerOnly: opts.OwnerOnly,
		log:       log,
	}
}

// ListScores returns every user's scores, served from the cache when possible.
// The cache generation is read before the store so that a list rendered
// concurrently with an update is discarded rather than cached.
func (s *ScoreService) ListScores(ctx context.Context) ([]ports.ScoreSummary, error) {
	var (
		gen       int64
		cacheable bool
	)
	if s.cache != nil {
		cached, g, ok, err := s.cache.GetScores(ctx)
		switch {
		case err != nil:
			metrics.ScoreCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("score cache read failed, falling back to store")
		case ok:
			metrics.ScoreCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ScoreCacheTotal.WithLabelValues("miss").Inc()
			gen, cacheable = g, true
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ScoreSummary, len(users))
	for i, u := range users {
		out[i] = toSummary(u)
	}

	if cacheable {
		if err := s.cache.SetScores(ctx, gen, out); err != nil {
			s.log.Warn().Err(err).Msg("score cache write failed")
		}
	}
	return out, nil
}

func (s *ScoreService) GetScore(ctx context.Context, id string) (*ports.ScoreSummary, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := toSummary(user)
	return &summary, nil
}

// UpdateScore validates the update, checks the target exists and applies it.
// Nothing is written when validation or lookup fails.
func (s *ScoreService) UpdateScore(ctx context.Context, in ports.UpdateScoreInput) error {
	if err := in.Update.Validate(); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}
	if s.ownerOnly && user.Username != in.Caller {
		return domain.ErrForbidden
	}

	if err := s.users.UpdateScore(ctx, user.ID, in.Update); err != nil {
		return err
	}
	metrics.ScoreUpdatesTotal.Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("score cache invalidation failed")
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(domain.ScoreChange{
			UserID:    user.ID,
			Username:  user.Username,
			UpdatedBy: in.Caller,
			Update:    in.Update,
			ChangedAt: time.Now().UTC(),
		})
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Str("updated_by", in.Caller).
		Msg("score updated")
	return nil
}

// History returns the most recent changes for a user, newest first.
func (s *ScoreService) History(ctx context.Context, id string, limit int) ([]*domain.ScoreChange, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.history.ListByUser(ctx, user.ID, limit)
}

func toSummary(u *domain.User) ports.ScoreSummary {
	return ports.ScoreSummary{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Score:      u.Score,
		Level1:     u.Level1,
		TotalScore: u.TotalScore,
		UpdatedAt:  u.UpdatedAt,
	}
}
