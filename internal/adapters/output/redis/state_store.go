package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/output"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure StateStore implements StateStore interface
var _ output.StateStore = (*StateStore)(nil)

// StateStore struct - Output adapter keeping conversation state in Redis.
// Expiry is delegated to the key TTL.
type StateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStateStore creates a Redis-backed state store. A non-positive ttl keeps keys forever.
func NewStateStore(client *redis.Client, ttl time.Duration) *StateStore {
	if ttl < 0 {
		ttl = 0
	}
	return &StateStore{client: client, ttl: ttl}
}

func (s *StateStore) Get(ctx context.Context, userID string) (domain.ConversationState, error) {
	value, err := s.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ConversationStateBrowsing, nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	state := domain.ConversationState(value)
	if !state.IsValid() {
		logrus.Warnf("Ignoring unknown conversation state %q for user %s", value, userID)
		return domain.ConversationStateBrowsing, nil
	}
	return state, nil
}

func (s *StateStore) Set(ctx context.Context, userID string, state domain.ConversationState) error {
	if err := s.client.Set(ctx, stateKey(userID), string(state), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *StateStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func stateKey(userID string) string {
	return fmt.Sprintf("conversation:%s", userID)
}
