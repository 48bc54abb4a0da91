package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is an expiring JSON key-value cache on Redis. A Store without a
// client treats every read as a miss and every write as a no-op.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New builds a Store. Keys are namespaced under prefix.
func New(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{client: client, prefix: strings.TrimSuffix(prefix, ":"), ttl: ttl, logger: logger}
}

// Enabled reports whether a Redis client is attached.
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Key joins parts under the store prefix.
func (s *Store) Key(parts ...string) string {
	all := make([]string, 0, len(parts)+1)
	if s != nil && s.prefix != "" {
		all = append(all, s.prefix)
	}
	all = append(all, parts...)
	return strings.Join(all, ":")
}

// AgentKey scopes a key to one agent.
func (s *Store) AgentKey(agentID string, parts ...string) string {
	return s.Key(append([]string{"agent", agentID}, parts...)...)
}

// Get decodes the cached value into dest. It reports false on a miss.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A value we cannot decode is stale; drop it.
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// Set stores value for ttl, or the store default when ttl is zero.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

// Delete removes keys.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// DeletePrefix removes every key starting with prefix and returns the count.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", 200).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

// InvalidateAgent drops every cached entry for the agent.
func (s *Store) InvalidateAgent(ctx context.Context, agentID string) (int, error) {
	n, err := s.DeletePrefix(ctx, s.AgentKey(agentID)+":")
	if err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("agent_id", agentID), zap.Error(err))
	}
	return n, err
}

// AcquireLock takes a short-lived exclusive lock. Without Redis the lock is
// always granted.
func (s *Store) AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	return s.client.SetNX(ctx, s.Key("lock", name), time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// Remember returns the cached value for key or computes, stores and returns it.
// Cache failures are logged and fall through to load.
func Remember[T any](ctx context.Context, s *Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if hit, err := s.Get(ctx, key, &cached); err != nil {
		s.log().Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := s.Set(ctx, key, value, ttl); err != nil {
		s.log().Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

func (s *Store) log() *zap.Logger {
	if s == nil || s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}
