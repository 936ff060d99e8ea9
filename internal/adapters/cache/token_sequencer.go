package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	redisclient "github.com/zatekoja/voicebyte/internal/infrastructure/clients/redis"
)

const (
	tokenKeyPrefix = "voicebyte:token:"
	tokenKeyTTL    = 36 * time.Hour
)

// DayCounter reports how many patients registered on a day
type DayCounter interface {
	CountByDay(ctx context.Context, day time.Time) (int, error)
}

// TokenSequencer hands out per-day queue tokens from a Redis counter. The
// counter is seeded from the database the first time a day is seen, and
// the database count is used directly when Redis is unavailable.
type TokenSequencer struct {
	client *redisclient.Client
	store  DayCounter
}

// NewTokenSequencer creates a token sequencer. client may be nil.
func NewTokenSequencer(client *redisclient.Client, store DayCounter) *TokenSequencer {
	return &TokenSequencer{client: client, store: store}
}

// Next returns the next token for day, starting at 1.
func (s *TokenSequencer) Next(ctx context.Context, day time.Time) (int, error) {
	if s.client != nil {
		token, err := s.nextFromRedis(ctx, day)
		if err == nil {
			return token, nil
		}
		log.Warn().Err(err).Msg("token counter unavailable, counting from database")
	}

	n, err := s.store.CountByDay(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to count today's patients: %w", err)
	}
	return n + 1, nil
}

func (s *TokenSequencer) nextFromRedis(ctx context.Context, day time.Time) (int, error) {
	rdb := s.client.Client()
	key := TokenKey(day)

	exists, err := rdb.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check token counter: %w", err)
	}
	if exists == 0 {
		n, err := s.store.CountByDay(ctx, day)
		if err != nil {
			return 0, fmt.Errorf("failed to seed token counter: %w", err)
		}
		if err := rdb.SetNX(ctx, key, n, tokenKeyTTL).Err(); err != nil {
			return 0, fmt.Errorf("failed to seed token counter: %w", err)
		}
	}

	token, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment token counter: %w", err)
	}
	return int(token), nil
}

// TokenKey is the Redis key holding day's counter.
func TokenKey(day time.Time) string {
	return tokenKeyPrefix + day.Format("2006-01-02")
}
