// Package sessions stores opaque admin session tokens in Redis. The session
// acts as the explicit capability object checked by the HTTP auth middleware;
// there is no global "current admin" state.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("sessions: not found")

// Session identifies an authenticated operator.
type Session struct {
	Token string
	Email string
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl:    ttl,
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Put(ctx context.Context, session Session) error {
	if err := s.client.Set(ctx, key(session.Token), session.Email, s.ttl).Err(); err != nil {
		return fmt.Errorf("sessions: store: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	email, err := s.client.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("sessions: load: %w", err)
	}
	return Session{Token: token, Email: email}, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return "session:" + token
}
