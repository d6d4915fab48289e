package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// QuotaStore counts generations per client per calendar month in Redis.
type QuotaStore struct {
	rdb   *redis.Client
	limit int64
	now   func() time.Time
}

// NewQuotaStore returns a QuotaStore allowing limit generations per month.
func NewQuotaStore(rdb *redis.Client, limit int) *QuotaStore {
	if limit <= 0 {
		limit = DefaultMonthlyQuota
	}
	return &QuotaStore{rdb: rdb, limit: int64(limit), now: time.Now}
}

func (s *QuotaStore) key(clientID string, month time.Time) string {
	return fmt.Sprintf("wishlist:quota:%s:%s", clientID, month.Format("2006-01"))
}

// Consume atomically takes one generation from the client's current-month allowance.
// Keys expire an hour after the month ends.
// Returns ErrQuotaExceeded once the allowance is spent.
func (s *QuotaStore) Consume(ctx context.Context, clientID string) error {
	now := s.now().UTC()
	key := s.key(clientID, now)
	firstOfNext := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	ttl := firstOfNext.Sub(now) + time.Hour

	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("wishlist quota: %w", err)
	}
	if incr.Val() > s.limit {
		// Roll back the rejected increment.
		if err := s.rdb.Decr(ctx, key).Err(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("client_id", clientID).Msg("failed to roll back wishlist quota increment")
		}
		return ErrQuotaExceeded
	}
	return nil
}

// Remaining reports how many generations the client has left this month.
func (s *QuotaStore) Remaining(ctx context.Context, clientID string) (int, error) {
	used, err := s.rdb.Get(ctx, s.key(clientID, s.now().UTC())).Int64()
	if err == redis.Nil {
		return int(s.limit), nil
	}
	if err != nil {
		return 0, fmt.Errorf("wishlist quota: %w", err)
	}
	return int(max(s.limit-used, 0)), nil
}
