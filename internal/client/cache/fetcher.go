package cache

import "context"

// Fetcher loads the value for a key from the backing API.
type Fetcher[V any] interface {
	Fetch(ctx context.Context, key Key) (V, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[V any] func(ctx context.Context, key Key) (V, error)

func (f FetcherFunc[V]) Fetch(ctx context.Context, key Key) (V, error) {
	return f(ctx, key)
}
