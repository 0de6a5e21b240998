package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/logging"
)

// ErrDisposed is returned by Wait once the cache has been disposed.
var ErrDisposed = errors.New("cache disposed")

// Option configures a Cache.
type Option func(*options)

type options struct {
	logger       logging.Logger
	now          func() time.Time
	fetchTimeout time.Duration
}

// WithLogger sets the logger used for fetch and invalidation events.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithFetchTimeout bounds every fetch. Zero leaves timeouts to the fetcher.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.fetchTimeout = d }
}

// record is the cache-owned state behind an Entry. gen is the generation of
// the latest fetch started for the key; only that fetch may settle it.
type record[V any] struct {
	entry Entry[V]
	gen   uint64
}

// Cache holds query results keyed by Key and keeps them fresh for active
// subscribers. All state changes happen under mu; fetches run on their own
// goroutines and never hold the lock while calling the fetcher.
type Cache[V any] struct {
	fetcher Fetcher[V]
	opts    options
	logger  logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	records  map[Key]*record[V]
	subs     map[Key]map[*Subscription[V]]struct{}
	gen      uint64
	changed  chan struct{}
	disposed bool
}

// New constructs a cache that loads values with fetcher. Call Dispose when
// the cache is no longer needed.
func New[V any](fetcher Fetcher[V], opts ...Option) *Cache[V] {
	o := options{logger: logging.Nop{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Cache[V]{
		fetcher: fetcher,
		opts:    o,
		logger:  o.logger.With("module", "cache"),
		ctx:     ctx,
		cancel:  cancel,
		records: make(map[Key]*record[V]),
		subs:    make(map[Key]map[*Subscription[V]]struct{}),
		changed: make(chan struct{}),
	}
}

// Subscribe registers interest in key. A fetch starts when the key has no
// settled value yet or its last fetch failed; a subscriber arriving while a
// fetch is in flight shares it. The returned subscription immediately holds
// the current snapshot on its Updates channel.
func (c *Cache[V]) Subscribe(key Key) *Subscription[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub := newSubscription(c, key)
	if c.disposed {
		sub.closed = true
		close(sub.updates)
		return sub
	}

	set, ok := c.subs[key]
	if !ok {
		set = make(map[*Subscription[V]]struct{})
		c.subs[key] = set
	}
	set[sub] = struct{}{}

	rec, ok := c.records[key]
	if !ok {
		rec = &record[V]{entry: Entry[V]{Key: key, Status: StatusIdle}}
		c.records[key] = rec
	}

	switch rec.entry.Status {
	case StatusIdle, StatusError:
		c.startFetch(key, rec)
	default:
		sub.push(rec.entry)
	}

	c.logger.Debug(c.ctx, "subscribed", "key", key.String(), "subscribers", len(set), "status", rec.entry.Status.String())
	return sub
}

// Unsubscribe removes sub. In-flight fetches keep running and the entry is
// kept even when no subscriber is left. Calling it twice is harmless.
func (c *Cache[V]) Unsubscribe(sub *Subscription[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.updates)

	if set, ok := c.subs[sub.key]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(c.subs, sub.key)
		}
	}
}

// Read returns the current snapshot for key without blocking. Unknown keys
// read as idle entries.
func (c *Cache[V]) Read(key Key) Entry[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rec, ok := c.records[key]; ok {
		return rec.entry
	}
	return Entry[V]{Key: key, Status: StatusIdle}
}

// Invalidate marks key as no longer authoritative. With active subscribers
// a refetch starts at once and the previous data stays readable until it
// settles; results of fetches started earlier are then discarded. Without
// subscribers the entry is dropped and fetched again on next Subscribe.
// Unknown keys are ignored.
func (c *Cache[V]) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}

	rec, ok := c.records[key]
	if !ok {
		return
	}

	if len(c.subs[key]) == 0 {
		delete(c.records, key)
		c.logger.Debug(c.ctx, "dropped", "key", key.String())
		return
	}

	rec.entry.Stale = true
	c.startFetch(key, rec)
	c.logger.Debug(c.ctx, "invalidated", "key", key.String(), "subscribers", len(c.subs[key]))
}

// Subscribers returns the number of active subscriptions for key.
func (c *Cache[V]) Subscribers(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs[key])
}

// Dispose cancels in-flight fetches, closes every subscription and waits for
// fetch goroutines to exit. The cache must not be used afterwards except for
// Read; later Dispose calls return immediately.
func (c *Cache[V]) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.cancel()
	for key, set := range c.subs {
		for sub := range set {
			sub.closed = true
			close(sub.updates)
		}
		delete(c.subs, key)
	}
	c.broadcast()
	c.mu.Unlock()

	c.wg.Wait()
}

// startFetch moves rec to loading under a new generation and runs the
// fetcher in the background. Callers hold mu.
func (c *Cache[V]) startFetch(key Key, rec *record[V]) {
	c.gen++
	gen := c.gen

	rec.gen = gen
	rec.entry.Status = StatusLoading
	rec.entry.Err = nil
	c.notify(key, rec.entry)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx := c.ctx
		if c.opts.fetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.opts.fetchTimeout)
			defer cancel()
		}

		c.logger.Debug(ctx, "fetch started", "key", key.String(), "gen", gen)
		v, err := c.fetcher.Fetch(ctx, key)
		c.settle(key, gen, v, err)
	}()
}

// settle applies a fetch outcome if the fetch is still the latest one for
// the key; anything older is dropped so late responses never regress the
// entry.
func (c *Cache[V]) settle(key Key, gen uint64, v V, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}

	rec, ok := c.records[key]
	if !ok || rec.gen != gen {
		c.logger.Debug(c.ctx, "fetch result discarded", "key", key.String(), "gen", gen)
		return
	}

	rec.entry.Stale = false
	if err != nil {
		rec.entry.Status = StatusError
		rec.entry.Err = err
		c.logger.Warn(c.ctx, "fetch failed", "key", key.String(), "error", err)
	} else {
		rec.entry.Status = StatusSuccess
		rec.entry.Data = v
		rec.entry.HasData = true
		rec.entry.Err = nil
		rec.entry.UpdatedAt = c.opts.now()
		c.logger.Debug(c.ctx, "fetch settled", "key", key.String(), "gen", gen)
	}
	c.notify(key, rec.entry)
}

// notify pushes e to every subscriber of key and wakes waiters. Callers
// hold mu.
func (c *Cache[V]) notify(key Key, e Entry[V]) {
	for sub := range c.subs[key] {
		sub.push(e)
	}
	c.broadcast()
}

func (c *Cache[V]) broadcast() {
	close(c.changed)
	c.changed = make(chan struct{})
}

// watch returns the snapshot for key together with a channel closed on the
// next state change.
func (c *Cache[V]) watch(key Key) (Entry[V], <-chan struct{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := Entry[V]{Key: key, Status: StatusIdle}
	if rec, ok := c.records[key]; ok {
		e = rec.entry
	}
	return e, c.changed, c.disposed
}
