package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "conversation:"

// RedisStore keeps conversations in Redis so that stale conversations expire
// on their own and a bot restart does not drop in-flight dialogues.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A zero ttl disables expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func redisKey(customerID string) string {
	return redisKeyPrefix + customerID
}

// GetOrCreate loads the conversation for customerID, returning a fresh idle
// one when none is stored.
func (s *RedisStore) GetOrCreate(ctx context.Context, customerID string) (*State, error) {
	data, err := s.client.Get(ctx, redisKey(customerID)).Bytes()
	if err == redis.Nil {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	state := &State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return state, nil
}

// Save stores the state for customerID, refreshing its TTL.
func (s *RedisStore) Save(ctx context.Context, customerID string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode conversation: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(customerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// Delete forgets the conversation for customerID.
func (s *RedisStore) Delete(ctx context.Context, customerID string) error {
	if err := s.client.Del(ctx, redisKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
