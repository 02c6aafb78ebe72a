package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// ExpectedLossStore keeps successful hazard-service results in Redis so that
// several service instances share one warm cache.
type ExpectedLossStore struct {
	client redis.UniversalClient
	prefix string
	logger logger.Logger
}

// NewExpectedLossStore creates a store writing keys under prefix.
func NewExpectedLossStore(conn *RedisConnection, prefix string, log logger.Logger) *ExpectedLossStore {
	return &ExpectedLossStore{
		client: conn.GetClient(),
		prefix: prefix,
		logger: log.WithComponent("ExpectedLossStore"),
	}
}

// storedLoss is the value written under each key. FetchedAt travels with
// the loss so readers can age the entry from the original fetch.
type storedLoss struct {
	Loss      *models.ExpectedLoss `json:"loss"`
	FetchedAt time.Time            `json:"fetched_at"`
}

func (s *ExpectedLossStore) key(k string) string {
	return s.prefix + k
}

// Get returns the loss and its original fetch time. A missing, expired or
// undecodable entry yields a nil loss and no error.
func (s *ExpectedLossStore) Get(ctx context.Context, key string) (*models.ExpectedLoss, time.Time, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, apperrors.ErrCache("get", err)
	}

	var entry storedLoss
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Loss == nil || entry.FetchedAt.IsZero() {
		fields := logger.Fields{"key": key}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logger.Warn(ctx, "discarding undecodable expected loss entry", fields)
		_ = s.client.Del(ctx, s.key(key)).Err()
		return nil, time.Time{}, nil
	}
	return entry.Loss, entry.FetchedAt, nil
}

// Set stores loss stamped with fetchedAt, expiring after ttl.
func (s *ExpectedLossStore) Set(ctx context.Context, key string, loss *models.ExpectedLoss, fetchedAt time.Time, ttl time.Duration) error {
	raw, err := json.Marshal(storedLoss{Loss: loss, FetchedAt: fetchedAt.UTC()})
	if err != nil {
		return apperrors.ErrCache("encode", err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, ttl).Err(); err != nil {
		return apperrors.ErrCache("set", err)
	}
	return nil
}

// Keys lists the stored cache keys without the namespace prefix.
func (s *ExpectedLossStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(s.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, apperrors.ErrCache("scan", err)
	}
	return keys, nil
}

// Clear removes every key under the store's prefix.
func (s *ExpectedLossStore) Clear(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return apperrors.ErrCache("clear", err)
	}
	s.logger.Info(ctx, "shared expected loss cache cleared", logger.Fields{"removed": len(full)})
	return nil
}
