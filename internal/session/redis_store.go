package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("session.redis")

const (
	fieldUserID    = "user_id"
	fieldUsername  = "username"
	fieldEmail     = "email"
	fieldCSRFToken = "csrf_token"
	fieldCreatedAt = "created_at"
)

// RedisStore keeps each session in a "session:<id>" hash with a TTL and indexes
// a user's sessions in the "user_sessions:<user id>" set.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a new Redis-based session store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func userSessionsKey(userID int64) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// Get loads a session hash. Redis expiry makes stale ids disappear on their own.
func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	ctx, span := tracer.Start(ctx, "RedisStore.Get")
	defer span.End()

	data, err := s.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	d := &Data{
		Username:  data[fieldUsername],
		Email:     data[fieldEmail],
		CSRFToken: data[fieldCSRFToken],
	}
	if raw := data[fieldUserID]; raw != "" {
		if d.UserID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("corrupt session user id %q: %w", raw, err)
		}
	}
	if raw := data[fieldCreatedAt]; raw != "" {
		if d.CreatedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return nil, fmt.Errorf("corrupt session timestamp %q: %w", raw, err)
		}
	}
	return d, nil
}

// Save writes the session hash and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	ctx, span := tracer.Start(ctx, "RedisStore.Save")
	defer span.End()

	key := sessionKey(id)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		fieldUserID:    strconv.FormatInt(data.UserID, 10),
		fieldUsername:  data.Username,
		fieldEmail:     data.Email,
		fieldCSRFToken: data.CSRFToken,
		fieldCreatedAt: data.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if data.UserID != 0 {
		indexKey := userSessionsKey(data.UserID)
		pipe.SAdd(ctx, indexKey, id)
		pipe.Expire(ctx, indexKey, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session in redis: %w", err)
	}
	return nil
}

// Delete removes a session and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "RedisStore.Delete")
	defer span.End()

	key := sessionKey(id)
	raw, err := s.rdb.HGet(ctx, key, fieldUserID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to read session owner: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if userID, _ := strconv.ParseInt(raw, 10, 64); userID != 0 {
		pipe.SRem(ctx, userSessionsKey(userID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

// DeleteUser removes every indexed session of a user.
func (s *RedisStore) DeleteUser(ctx context.Context, userID int64) error {
	ctx, span := tracer.Start(ctx, "RedisStore.DeleteUser")
	defer span.End()

	indexKey := userSessionsKey(userID)
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, indexKey)

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
