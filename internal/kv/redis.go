package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dailywork:"

type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(addr, password string, db int) (*RedisStorage, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStorage{rdb: rdb}, nil
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

// Ping checks connectivity.
func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, redisKey(key)).Err()
}

func (r *RedisStorage) Close() error {
	return r.rdb.Close()
}
