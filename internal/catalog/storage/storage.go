// Package storage defines the persistence contract for the catalog cache.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/caoslabs/caos/internal/catalog"
)

// ErrNotFound indicates no cached listings exist for the requested category.
var ErrNotFound = errors.New("catalog cache entry not found")

// CachedCategory is the last-known-good listing set for one category.
type CachedCategory struct {
	Category  string
	Listings  []catalog.Listing
	FetchedAt time.Time
}

// CacheStore persists per-category listing snapshots. The cache only seeds
// initial state after a restart; it never satisfies an in-flight fetch.
type CacheStore interface {
	GetCategory(ctx context.Context, category string) (CachedCategory, error)
	PutCategory(ctx context.Context, cached CachedCategory) error
}
