// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pilgrimpath/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	sessionPrefix     = "ai:session:"
	sessionLockPrefix = "ai:session-lock:"
	// longest a turn may hold its session; covers a slow model call
	sessionLockTTL = 30 * time.Second
)

// ErrSessionBusy means another turn of the same session is still running.
var ErrSessionBusy = errors.New("session is busy with another message")

// unlockScript deletes the lock only if it still carries our token, so a
// turn that outlived its lock cannot release the next holder's.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// SessionStore keeps assistant conversations between turns.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.AssistantSession, error)
	Set(ctx context.Context, session *models.AssistantSession) error
	Clear(ctx context.Context, sessionID string) error
	// Lock serialises turns of one session. It fails with ErrSessionBusy
	// instead of waiting; the returned func releases the lock.
	Lock(ctx context.Context, sessionID string) (unlock func(), err error)
}

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Get returns the stored session, or an empty one when the id is unknown or
// expired.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.AssistantSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return &models.AssistantSession{ID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session models.AssistantSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	session.ID = sessionID
	return &session, nil
}

// Set stores the session and restarts its expiry; a conversation left parked
// longer than the ttl is abandoned.
func (s *RedisSessionStore) Set(ctx context.Context, session *models.AssistantSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, sessionPrefix+session.ID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}

func (s *RedisSessionStore) Lock(ctx context.Context, sessionID string) (func(), error) {
	key := sessionLockPrefix + sessionID
	token := uuid.New().String()

	ok, err := s.client.SetNX(ctx, key, token, sessionLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	if !ok {
		return nil, ErrSessionBusy
	}
	return func() {
		// the request context may already be cancelled
		unlockScript.Run(context.Background(), s.client, []string{key}, token)
	}, nil
}
