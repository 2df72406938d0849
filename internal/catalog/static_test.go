package catalog

import (
	"context"
	"testing"
)

func TestStaticProviderDeterministic(t *testing.T) {
	provider := NewStaticProvider()

	first, err := provider.Fetch(context.Background(), "music")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	second, err := provider.Fetch(context.Background(), "music")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(first) != FetchSize {
		t.Fatalf("Fetch() returned %d listings, want %d", len(first), FetchSize)
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Title != second[i].Title {
			t.Fatalf("Fetch() listing %d differs between calls: %q vs %q", i, first[i].Title, second[i].Title)
		}
	}
}

func TestStaticProviderEveryCategoryWithinBounds(t *testing.T) {
	provider := NewStaticProvider()

	for _, category := range Categories() {
		listings, err := provider.Fetch(context.Background(), category.Key)
		if err != nil {
			t.Fatalf("Fetch(%q) error = %v", category.Key, err)
		}
		if len(listings) != FetchSize {
			t.Fatalf("Fetch(%q) returned %d listings, want %d", category.Key, len(listings), FetchSize)
		}
		for _, listing := range listings {
			if !listing.Kind.Valid() {
				t.Fatalf("Fetch(%q) listing %q kind = %q", category.Key, listing.ID, listing.Kind)
			}
			if listing.Title == "" {
				t.Fatalf("Fetch(%q) listing %q has empty title", category.Key, listing.ID)
			}
			if listing.Rating < 4.0 || listing.Rating > 5.0 {
				t.Fatalf("Fetch(%q) listing %q rating = %v", category.Key, listing.ID, listing.Rating)
			}
			coords := listing.Coordinates
			if coords == nil {
				t.Fatalf("Fetch(%q) listing %q has no coordinates", category.Key, listing.ID)
			}
			if coords.Lat < 0 || coords.Lat > 100 || coords.Lng < 0 || coords.Lng > 100 {
				t.Fatalf("Fetch(%q) listing %q coordinates = %+v", category.Key, listing.ID, coords)
			}
		}
	}
}

func TestStaticProviderHonorsContext(t *testing.T) {
	provider := NewStaticProvider()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.Fetch(ctx, "music"); err == nil {
		t.Fatal("Fetch() error = nil, want context error")
	}
}
