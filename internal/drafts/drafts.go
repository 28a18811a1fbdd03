// Package drafts keeps in-progress estimate forms in Redis so a closed browser
// tab can be recovered.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/pricing"
)

var ErrNotFound = errors.New("draft not found")

// Draft is an unvalidated job being edited.
type Draft struct {
	ID         uuid.UUID              `json:"id"`
	Title      string                 `json:"title"`
	Job        pricing.JobDescription `json:"job"`
	Adjustment *pricing.Adjustment    `json:"adjustment,omitempty"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl, now: time.Now}
}

// Connect dials Redis and retries the first ping with exponential backoff.
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	const operation = "drafts.Connect"

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 30 * time.Second
	retryPolicy.MaxInterval = 5 * time.Second

	logger.Info("Connecting to Redis...", zap.String("addr", opts.Addr))

	err := backoff.RetryNotify(
		func() error {
			return client.Ping(ctx).Err()
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("Redis ping failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	logger.Info("Successfully connected to Redis")
	return New(client, opts.TTL), nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Save writes the draft and refreshes its TTL. A zero ID gets a new one.
func (s *Store) Save(ctx context.Context, d Draft) (Draft, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(d)
	if err != nil {
		return Draft{}, fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, buildDraftKey(d.ID), data, s.ttl).Err(); err != nil {
		return Draft{}, fmt.Errorf("save draft: %w", err)
	}
	return d, nil
}

func (s *Store) Load(ctx context.Context, id uuid.UUID) (Draft, error) {
	data, err := s.client.Get(ctx, buildDraftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("get draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return d, nil
}

// Delete removes a draft. Deleting a missing draft returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.client.Del(ctx, buildDraftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func buildDraftKey(id uuid.UUID) string {
	return fmt.Sprintf("draft:%s", id)
}
