package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession means the token is missing, expired, or was destroyed.
var ErrNoSession = errors.New("no active session")

// Manager maps opaque session tokens to authenticated user ids. Tokens are
// handed to the browser as a cookie; everything else lives in Redis with a
// sliding TTL.
type Manager interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

type redisManager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisManager(client *redis.Client, ttl time.Duration) Manager {
	return &redisManager{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (m *redisManager) Create(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := m.client.Set(ctx, sessionKey(sessionID), userID, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sessionID, nil
}

func (m *redisManager) Resolve(ctx context.Context, sessionID string) (string, error) {
	userID, err := m.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}

	// sliding expiry
	_ = m.client.Expire(ctx, sessionKey(sessionID), m.ttl).Err()

	return userID, nil
}

func (m *redisManager) Destroy(ctx context.Context, sessionID string) error {
	if err := m.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
