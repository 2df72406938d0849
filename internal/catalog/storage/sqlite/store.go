// Package sqlite provides a SQLite-backed catalog cache implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caoslabs/caos/internal/catalog"
	"github.com/caoslabs/caos/internal/catalog/storage"
	"github.com/caoslabs/caos/internal/catalog/storage/sqlite/migrations"
	"github.com/caoslabs/caos/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists per-category listing snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite catalog cache and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutCategory replaces the cached listing set for one category.
func (s *Store) PutCategory(ctx context.Context, cached storage.CachedCategory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	category := strings.TrimSpace(cached.Category)
	if category == "" {
		return fmt.Errorf("category is required")
	}

	fetchedAt := cached.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM category_listings WHERE category = ?", category); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear cached category: %w", err)
	}

	for position, listing := range cached.Listings {
		tags, err := json.Marshal(listing.Tags)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("marshal listing tags: %w", err)
		}
		var lat, lng sql.NullFloat64
		if listing.Coordinates != nil {
			lat = sql.NullFloat64{Float64: listing.Coordinates.Lat, Valid: true}
			lng = sql.NullFloat64{Float64: listing.Coordinates.Lng, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO category_listings
(category, position, listing_id, kind, title, subtitle, description, image_url, price, rating, reviews, event_date, lat, lng, tags, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			category, position, listing.ID, string(listing.Kind), listing.Title,
			listing.Subtitle, listing.Description, listing.ImageURL, listing.Price,
			listing.Rating, listing.Reviews, listing.Date, lat, lng, string(tags),
			toMillis(fetchedAt),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert cached listing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache transaction: %w", err)
	}
	return nil
}

// GetCategory fetches the cached listing set for one category.
func (s *Store) GetCategory(ctx context.Context, category string) (storage.CachedCategory, error) {
	if err := ctx.Err(); err != nil {
		return storage.CachedCategory{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.CachedCategory{}, fmt.Errorf("storage is not configured")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return storage.CachedCategory{}, fmt.Errorf("category is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT listing_id, kind, title, subtitle, description, image_url, price, rating, reviews, event_date, lat, lng, tags, fetched_at
FROM category_listings
WHERE category = ?
ORDER BY position ASC`, category)
	if err != nil {
		return storage.CachedCategory{}, fmt.Errorf("query cached category: %w", err)
	}
	defer rows.Close()

	cached := storage.CachedCategory{Category: category}
	for rows.Next() {
		var (
			listing   catalog.Listing
			kind      string
			lat, lng  sql.NullFloat64
			tags      string
			fetchedAt int64
		)
		if err := rows.Scan(
			&listing.ID, &kind, &listing.Title, &listing.Subtitle,
			&listing.Description, &listing.ImageURL, &listing.Price,
			&listing.Rating, &listing.Reviews, &listing.Date,
			&lat, &lng, &tags, &fetchedAt,
		); err != nil {
			return storage.CachedCategory{}, fmt.Errorf("scan cached listing: %w", err)
		}
		listing.Kind = catalog.Kind(kind)
		if lat.Valid && lng.Valid {
			listing.Coordinates = &catalog.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
		}
		if err := json.Unmarshal([]byte(tags), &listing.Tags); err != nil {
			return storage.CachedCategory{}, fmt.Errorf("unmarshal listing tags: %w", err)
		}
		cached.Listings = append(cached.Listings, listing)
		cached.FetchedAt = fromMillis(fetchedAt)
	}
	if err := rows.Err(); err != nil {
		return storage.CachedCategory{}, fmt.Errorf("iterate cached listings: %w", err)
	}
	if len(cached.Listings) == 0 {
		return storage.CachedCategory{}, storage.ErrNotFound
	}
	return cached, nil
}
