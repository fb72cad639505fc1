package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "scores-api"
)

// Config captures the settings required to open the score store.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store bundles the client with the selected database so callers can both
// build repositories and release the connection pool on shutdown.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens a MongoDB client and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Ping runs a ping command against the selected database.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// EnsureIndexes creates the indexes of every collection the service uses.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := NewUserRepository(s.DB).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := NewHistoryRepository(s.DB).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("score_history indexes: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
