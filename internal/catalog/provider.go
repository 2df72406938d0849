package catalog

import "context"

// FetchSize is the number of listings a provider is expected to return for
// one category request.
const FetchSize = 8

// Provider returns the listing set for a category key. Implementations may
// take arbitrarily long; callers handle staleness and failure, so a provider
// never needs to fall back itself.
type Provider interface {
	Fetch(ctx context.Context, category string) ([]Listing, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, category string) ([]Listing, error)

// Fetch calls the wrapped function.
func (f ProviderFunc) Fetch(ctx context.Context, category string) ([]Listing, error) {
	return f(ctx, category)
}
