// Package redis provides a Redis-backed session store for deployments that
// already run a shared cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/caoslabs/caos/internal/session/storage"
	"github.com/redis/go-redis/v9"
)

const sessionKey = "caos:session:current"

// Store provides a Redis-backed session store.
type Store struct {
	client *redis.Client
}

// Open connects to the Redis instance at the provided address.
func Open(ctx context.Context, addr, password string) (*Store, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Put persists the session record.
func (s *Store) Put(ctx context.Context, record storage.Record) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("storage is not configured")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("set session record: %w", err)
	}
	return nil
}

// Get fetches the persisted session record, if any.
func (s *Store) Get(ctx context.Context) (storage.Record, error) {
	if s == nil || s.client == nil {
		return storage.Record{}, fmt.Errorf("storage is not configured")
	}

	payload, err := s.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return storage.Record{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("get session record: %w", err)
	}

	var record storage.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return storage.Record{}, fmt.Errorf("unmarshal session record: %w", err)
	}
	return record, nil
}

// Clear removes the persisted session record.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("storage is not configured")
	}

	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}
