package cache

import "context"

// Subscription is one reader's interest in a key.
type Subscription[V any] struct {
	cache   *Cache[V]
	key     Key
	updates chan Entry[V]

	// closed is guarded by cache.mu.
	closed bool
}

func newSubscription[V any](c *Cache[V], key Key) *Subscription[V] {
	return &Subscription[V]{cache: c, key: key, updates: make(chan Entry[V], 1)}
}

func (s *Subscription[V]) Key() Key { return s.key }

// Updates delivers snapshots of the key as they change. Only the latest
// undelivered snapshot is kept, so a slow reader sees the newest state and
// never blocks the cache. The channel is closed on Close or Dispose.
func (s *Subscription[V]) Updates() <-chan Entry[V] { return s.updates }

// Read returns the current snapshot of the subscribed key.
func (s *Subscription[V]) Read() Entry[V] { return s.cache.Read(s.key) }

// Close unsubscribes.
func (s *Subscription[V]) Close() { s.cache.Unsubscribe(s) }

// Wait blocks until the key is settled (success or error) and returns that
// snapshot. It does not consume Updates.
func (s *Subscription[V]) Wait(ctx context.Context) (Entry[V], error) {
	for {
		e, changed, disposed := s.cache.watch(s.key)
		if e.Settled() {
			return e, nil
		}
		if disposed {
			return e, ErrDisposed
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return e, ctx.Err()
		}
	}
}

// push replaces any undelivered snapshot with e. Callers hold cache.mu, so
// pushes are serialized and the send never blocks.
func (s *Subscription[V]) push(e Entry[V]) {
	if s.closed {
		return
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- e
}
