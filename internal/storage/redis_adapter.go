package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter stores documents as plain redis strings under a namespace
// prefix. A side-index SET tracks every known key so enumeration and Clear do
// not depend on scanning the whole keyspace.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

const redisIndexSuffix = ":_keys"

// NewRedisAdapter creates an adapter namespaced by prefix (e.g. "pos:doc").
func NewRedisAdapter(client *redis.Client, prefix string) *RedisAdapter {
	if prefix == "" {
		prefix = "pos:doc"
	}
	return &RedisAdapter{client: client, prefix: prefix}
}

var _ Adapter = (*RedisAdapter)(nil)

func (a *RedisAdapter) dataKey(key string) string {
	return a.prefix + ":" + key
}

func (a *RedisAdapter) indexKey() string {
	return a.prefix + redisIndexSuffix
}

func (a *RedisAdapter) Get(ctx context.Context, key string) (json.RawMessage, error) {
	val, err := a.client.Get(ctx, a.dataKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(val), nil
}

func (a *RedisAdapter) Set(ctx context.Context, key string, value json.RawMessage) error {
	pipe := a.client.TxPipeline()
	pipe.Set(ctx, a.dataKey(key), []byte(value), 0)
	pipe.SAdd(ctx, a.indexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (a *RedisAdapter) Remove(ctx context.Context, key string) error {
	pipe := a.client.TxPipeline()
	pipe.Del(ctx, a.dataKey(key))
	pipe.SRem(ctx, a.indexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (a *RedisAdapter) Clear(ctx context.Context) error {
	keys, err := a.client.SMembers(ctx, a.indexKey()).Result()
	if err != nil {
		return err
	}
	pipe := a.client.TxPipeline()
	for _, key := range keys {
		pipe.Del(ctx, a.dataKey(key))
	}
	pipe.Del(ctx, a.indexKey())
	_, err = pipe.Exec(ctx)
	return err
}

func (a *RedisAdapter) Keys(ctx context.Context) ([]string, error) {
	keys, err := a.client.SMembers(ctx, a.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	return keys, nil
}
