package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arcadeboard/scores-api/internal/core/domain"
)

const collectionHistory = "score_history"

// HistoryRepository implements ports.HistoryRepository using MongoDB.
type HistoryRepository struct {
	col *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{col: db.Collection(collectionHistory)}
}

type historyDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Username   string             `bson:"username"`
	UpdatedBy  string             `bson:"updated_by"`
	Score      *int               `bson:"score"`
	Level1     *int               `bson:"level1"`
	TotalScore *int               `bson:"total_score"`
	ChangedAt  time.Time          `bson:"changed_at"`
}

// Insert appends a change to the audit trail.
func (r *HistoryRepository) Insert(ctx context.Context, change *domain.ScoreChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := historyDoc{
		ID:         primitive.NewObjectID(),
		UserID:     change.UserID,
		Username:   change.Username,
		UpdatedBy:  change.UpdatedBy,
		Score:      change.Update.Score,
		Level1:     change.Update.Level1,
		TotalScore: change.Update.TotalScore,
		ChangedAt:  change.ChangedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert score change: %w", err)
	}
	change.ID = doc.ID.Hex()
	return nil
}

// ListByUser returns the newest limit entries for userID.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoreChange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "changed_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list score changes: %w", err)
	}

	var docs []historyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode score changes: %w", err)
	}

	out := make([]*domain.ScoreChange, len(docs))
	for i, d := range docs {
		out[i] = &domain.ScoreChange{
			ID:        d.ID.Hex(),
			UserID:    d.UserID,
			Username:  d.Username,
			UpdatedBy: d.UpdatedBy,
			Update: domain.ScoreUpdate{
				Score:      d.Score,
				Level1:     d.Level1,
				TotalScore: d.TotalScore,
			},
			ChangedAt: d.ChangedAt.UTC(),
		}
	}
	return out, nil
}

// EnsureIndexes supports the per-user, newest-first lookup.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "changed_at", Value: -1}},
	})
	return err
}
