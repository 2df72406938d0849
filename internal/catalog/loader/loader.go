// Package loader orchestrates category-scoped catalog fetches with
// stale-response suppression.
//
// The loader is a deliberately single-threaded state machine: every method
// must be called from the application dispatch loop. Asynchronous fetches
// run elsewhere and resolve by handing their result back to Resolve together
// with the Request that issued them; the loader decides at resolution time
// whether the result still applies.
package loader

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/caoslabs/caos/internal/catalog"
	"github.com/caoslabs/caos/internal/catalog/storage"
)

// State is the per-category load status visible to the render surface.
type State struct {
	Listings  []catalog.Listing
	Loading   bool
	LastError error
}

// Request identifies one issued fetch. Seq increases monotonically across
// all categories; a request is live only while it is the newest one issued
// for its category.
type Request struct {
	Category string
	Seq      uint64
}

// Loader tracks per-category catalog state.
type Loader struct {
	cache    storage.CacheStore
	fallback func() []catalog.Listing
	states   map[string]State
	latest   map[string]uint64
	seq      uint64
	selected string
	clock    func() time.Time
}

// Config controls loader construction.
type Config struct {
	// Cache, when set, seeds first-time category state from the last
	// persisted snapshot and records successful fetches.
	Cache storage.CacheStore
	// Fallback overrides the substitute catalog used on fetch failure.
	// Defaults to catalog.FallbackListings.
	Fallback func() []catalog.Listing
	// Clock stamps persisted snapshots. Defaults to time.Now.
	Clock func() time.Time
}

// New creates a Loader.
func New(cfg Config) *Loader {
	fallback := cfg.Fallback
	if fallback == nil {
		fallback = catalog.FallbackListings
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Loader{
		cache:    cfg.Cache,
		fallback: fallback,
		states:   make(map[string]State),
		latest:   make(map[string]uint64),
		clock:    clock,
	}
}

// Select makes category the visible selection and issues a new fetch
// request for it. The category is marked loading immediately, regardless of
// any request already in flight; the returned Request must accompany the
// eventual result into Resolve.
func (l *Loader) Select(ctx context.Context, category string) Request {
	l.selected = category

	state, seen := l.states[category]
	if !seen && l.cache != nil {
		cached, err := l.cache.GetCategory(ctx, category)
		switch {
		case err == nil:
			state.Listings = cached.Listings
		case errors.Is(err, storage.ErrNotFound):
			// First visit with a cold cache.
		default:
			log.Printf("catalog cache read for %q failed: %v", category, err)
		}
	}
	state.Loading = true
	l.states[category] = state

	l.seq++
	l.latest[category] = l.seq
	return Request{Category: category, Seq: l.seq}
}

// Resolve applies the outcome of one fetch. A result whose request has been
// superseded by a newer request for the same category is discarded without
// touching state: the newer request's own resolution clears the loading
// flag. On failure the fixed fallback catalog replaces the listings instead
// of surfacing an error to the view. Resolve reports whether the result was
// applied.
func (l *Loader) Resolve(ctx context.Context, req Request, listings []catalog.Listing, fetchErr error) bool {
	if l.latest[req.Category] != req.Seq {
		return false
	}

	state := l.states[req.Category]
	state.Loading = false
	if fetchErr != nil {
		state.Listings = l.fallback()
		state.LastError = fetchErr
	} else {
		state.Listings = listings
		state.LastError = nil
		if l.cache != nil {
			err := l.cache.PutCategory(ctx, storage.CachedCategory{
				Category:  req.Category,
				Listings:  listings,
				FetchedAt: l.clock(),
			})
			if err != nil {
				log.Printf("catalog cache write for %q failed: %v", req.Category, err)
			}
		}
	}
	l.states[req.Category] = state
	return true
}

// Selected returns the currently selected category key.
func (l *Loader) Selected() string {
	return l.selected
}

// State returns the load state for one category.
func (l *Loader) State(category string) State {
	return l.states[category]
}

// Current returns the load state for the selected category.
func (l *Loader) Current() State {
	return l.states[l.selected]
}
