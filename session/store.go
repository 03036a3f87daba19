package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned by Get when no slot exists for the email, either
// because none was ever written, it was deleted on logout, or its TTL elapsed.
var ErrNoSession = errors.New("no session for email")

// ErrUnavailable wraps Redis transport failures.
var ErrUnavailable = errors.New("session redis unavailable")

// Store is the Redis-backed single-slot session store.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore creates a [Store] keyed under prefix whose slots expire after
// refreshTTL, the refresh token's lifetime.
func NewStore(client redis.UniversalClient, prefix string, refreshTTL time.Duration) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    refreshTTL,
	}
}

func (s *Store) key(email string) string {
	return s.prefix + ":" + email
}

// Put writes refreshToken as the email's sole valid session, overwriting any
// prior slot and resetting the TTL to the full refresh lifetime.
//
//	Performance: 1 Redis command (SET with EX).
func (s *Store) Put(ctx context.Context, email, refreshToken string) error {
	if err := s.redis.Set(ctx, s.key(email), refreshToken, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Get returns the stored refresh token for email, or [ErrNoSession].
func (s *Store) Get(ctx context.Context, email string) (string, error) {
	value, err := s.redis.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

// Delete removes the email's slot and returns the number of removed entries
// (0 or 1). Deleting an absent slot is not an error.
func (s *Store) Delete(ctx context.Context, email string) (int64, error) {
	removed, err := s.redis.Del(ctx, s.key(email)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return removed, nil
}

// TTL reports the remaining lifetime of the email's slot. Used by tests and
// operational tooling; absent slots return [ErrNoSession].
func (s *Store) TTL(ctx context.Context, email string) (time.Duration, error) {
	d, err := s.redis.TTL(ctx, s.key(email)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if d < 0 {
		return 0, ErrNoSession
	}
	return d, nil
}
