// Package kv implements the durable key-value storage that holds the task
// collection.
//
// Values are opaque serialized text, the same contract a browser's local
// storage offers: one key, one string. Backends:
//
//   - file:   a single JSON object file mapping keys to values
//   - sqlite: a "kv" table in a local SQLite database
//   - redis:  plain string keys on a Redis server
//   - memory: an in-process map, used by tests
//
// # Usage
//
//	st, err := kv.Open(kv.Options{Backend: kv.BackendFile, Path: "/home/me/.dailywork/tasks.json"})
//	defer st.Close()
//	data, err := st.Get(ctx, "dailyTasks")
//	if errors.Is(err, kv.ErrNotFound) { ... }
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("key not found")

// Storage is a durable string key-value store.
type Storage interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string

	RedisAddr     string
	RedisDB       int
	RedisPassword string
}

// Open constructs the backend named by opts.Backend.
func Open(opts Options) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		return NewFileStorage(opts.Path)
	case BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return NewSQLiteStorage(opts.Path)
	case BackendRedis:
		return NewRedisStorage(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend '%s': must be file, sqlite, redis or memory", opts.Backend)
	}
}
