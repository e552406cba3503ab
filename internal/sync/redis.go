package sync

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisRemote stores each user's ledger mirror as a hash at users:{id} and
// the audit events as a hash at users:{id}:events keyed by event id.
type RedisRemote struct {
	rdb *redis.Client
}

// NewRedisRemote connects to the given Redis URL and verifies the connection.
func NewRedisRemote(ctx context.Context, redisURL string) (*RedisRemote, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisRemote{rdb: rdb}, nil
}

func userKey(userID string) string {
	return "users:" + userID
}

func (r *RedisRemote) Fetch(ctx context.Context, userID string) (Doc, error) {
	fields, err := r.rdb.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch user doc: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNoDoc
	}
	return Doc(fields), nil
}

func (r *RedisRemote) Save(ctx context.Context, userID string, fields Doc) error {
	if len(fields) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(fields))
	for field, payload := range fields {
		values[field] = payload
	}
	if err := r.rdb.HSet(ctx, userKey(userID), values).Err(); err != nil {
		return fmt.Errorf("save user doc: %w", err)
	}
	return nil
}

func (r *RedisRemote) SaveEvents(ctx context.Context, userID string, events map[string]string) error {
	if len(events) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(events))
	for id, payload := range events {
		values[id] = payload
	}
	if err := r.rdb.HSet(ctx, userKey(userID)+":events", values).Err(); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (r *RedisRemote) Close() error {
	return r.rdb.Close()
}
