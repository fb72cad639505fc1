package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arcadeboard/scores-api/internal/core/ports"
)

const (
	scoresKeyPrefix = "scores:all:"
	generationKey   = "scores:gen"
	defaultCacheTTL = 30 * time.Second
)

// ScoreCache keeps the rendered score list under a key suffixed with the
// current generation. Invalidate bumps the generation, so a list rendered
// before an update is written under a key that is never read again.
type ScoreCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewScoreCache creates a ScoreCache; ttl <= 0 falls back to 30s.
func NewScoreCache(client redis.Cmdable, ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ScoreCache{client: client, ttl: ttl}
}

func scoresKey(gen int64) string {
	return scoresKeyPrefix + strconv.FormatInt(gen, 10)
}

func (c *ScoreCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("score cache generation: %w", err)
	}
	return gen, nil
}

func (c *ScoreCache) GetScores(ctx context.Context) ([]ports.ScoreSummary, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, scoresKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("score cache get: %w", err)
	}

	var scores []ports.ScoreSummary
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, 0, false, fmt.Errorf("score cache decode: %w", err)
	}
	return scores, gen, true, nil
}

func (c *ScoreCache) SetScores(ctx context.Context, gen int64, scores []ports.ScoreSummary) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("score cache encode: %w", err)
	}
	return c.client.Set(ctx, scoresKey(gen), raw, c.ttl).Err()
}

// Invalidate starts a new generation and drops the list of the previous one.
func (c *ScoreCache) Invalidate(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("score cache invalidate: %w", err)
	}
	return c.client.Del(ctx, scoresKey(gen-1)).Err()
}
