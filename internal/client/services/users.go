// Package services contains the console's application services. UserService
// owns the user caches and coordinates writes with cache invalidation.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/userdesk/internal/client/cache"
	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/dmitrijs2005/userdesk/internal/logging"
)

// ResourceUsers is the cache resource name of the user collection.
const ResourceUsers = "users"

// UserService is the read and write side of the user list.
//
// Contract:
//   - Users / User: subscribe to the collection or one user; callers Close
//     the subscription when done.
//   - List / Get: one-shot reads through the cache.
//   - Create / Update / Remove: call the API, then on success invalidate the
//     collection exactly once (and the user's own entry). Failures leave the
//     cache untouched and are returned as the API reported them.
//   - Refresh: invalidate the collection on demand.
//   - Close: dispose the caches and the API client.
type UserService interface {
	Users() *cache.Subscription[[]models.User]
	User(id int64) *cache.Subscription[*models.User]
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, draft models.UserDraft) (*models.User, error)
	Update(ctx context.Context, id int64, draft models.UserDraft) (*models.User, error)
	Remove(ctx context.Context, id int64) error
	Refresh()
	LastMutation() Mutation
	Close(ctx context.Context) error
}

// Option configures the user service.
type Option func(*userService)

func WithLogger(l logging.Logger) Option {
	return func(s *userService) { s.logger = l }
}

// WithMutationListener registers fn for mutation state changes.
func WithMutationListener(fn MutationListener) Option {
	return func(s *userService) { s.listeners = append(s.listeners, fn) }
}

// WithCacheOptions passes options to both user caches.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(s *userService) { s.cacheOpts = append(s.cacheOpts, opts...) }
}

type userService struct {
	client    client.Client
	logger    logging.Logger
	listeners []MutationListener
	cacheOpts []cache.Option

	list  *cache.Cache[[]models.User]
	items *cache.Cache[*models.User]

	mu   sync.Mutex
	last Mutation
}

// NewUserService builds a UserService over c.
func NewUserService(c client.Client, opts ...Option) UserService {
	s := &userService{client: c, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "users")

	cacheOpts := append([]cache.Option{cache.WithLogger(s.logger)}, s.cacheOpts...)

	s.list = cache.New[[]models.User](cache.FetcherFunc[[]models.User](
		func(ctx context.Context, _ cache.Key) ([]models.User, error) {
			return s.client.FetchAll(ctx)
		}), cacheOpts...)

	s.items = cache.New[*models.User](cache.FetcherFunc[*models.User](
		func(ctx context.Context, k cache.Key) (*models.User, error) {
			return s.client.FetchOne(ctx, k.ID)
		}), cacheOpts...)

	return s
}

func (s *userService) Users() *cache.Subscription[[]models.User] {
	return s.list.Subscribe(cache.Collection(ResourceUsers))
}

func (s *userService) User(id int64) *cache.Subscription[*models.User] {
	return s.items.Subscribe(cache.Item(ResourceUsers, id))
}

// List returns the current user collection, fetching it if the cache holds
// nothing settled yet.
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	sub := s.Users()
	defer sub.Close()

	e, err := sub.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if e.IsError() {
		return nil, e.Err
	}
	return e.Data, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	sub := s.User(id)
	defer sub.Close()

	e, err := sub.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if e.IsError() {
		return nil, e.Err
	}
	return e.Data, nil
}

func (s *userService) Create(ctx context.Context, draft models.UserDraft) (*models.User, error) {
	var created *models.User
	err := s.mutate(ctx, Mutation{Kind: MutationCreate}, func(ctx context.Context) (int64, error) {
		if err := draft.Validate(); err != nil {
			return 0, err
		}
		u, err := s.client.Create(ctx, draft)
		if err != nil {
			return 0, err
		}
		created = u
		return u.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *userService) Update(ctx context.Context, id int64, draft models.UserDraft) (*models.User, error) {
	var updated *models.User
	err := s.mutate(ctx, Mutation{Kind: MutationUpdate, ID: id}, func(ctx context.Context) (int64, error) {
		if err := draft.Validate(); err != nil {
			return 0, err
		}
		u, err := s.client.Update(ctx, id, draft)
		if err != nil {
			return 0, err
		}
		updated = u
		return id, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *userService) Remove(ctx context.Context, id int64) error {
	return s.mutate(ctx, Mutation{Kind: MutationRemove, ID: id}, func(ctx context.Context) (int64, error) {
		return id, s.client.Delete(ctx, id)
	})
}

// mutate runs call as one mutation attempt. On success it invalidates the
// collection and the affected user without waiting for the refetch; on
// failure the cache is not touched.
func (s *userService) mutate(ctx context.Context, m Mutation, call func(context.Context) (int64, error)) error {
	m.State = MutationPending
	s.publish(m)

	id, err := call(ctx)
	if err != nil {
		m.State = MutationError
		m.Err = err
		s.publish(m)
		s.logger.Warn(ctx, "mutation failed", "kind", string(m.Kind), "id", m.ID, "error", err)
		return err
	}

	m.ID = id
	s.list.Invalidate(cache.Collection(ResourceUsers))
	s.items.Invalidate(cache.Item(ResourceUsers, id))

	m.State = MutationSuccess
	s.publish(m)
	s.logger.Info(ctx, "mutation succeeded", "kind", string(m.Kind), "id", id)
	return nil
}

func (s *userService) publish(m Mutation) {
	s.mu.Lock()
	s.last = m
	s.mu.Unlock()

	for _, fn := range s.listeners {
		fn(m)
	}
}

func (s *userService) Refresh() {
	s.list.Invalidate(cache.Collection(ResourceUsers))
}

// LastMutation returns the most recent mutation state, or the zero
// (idle) Mutation when nothing was written yet.
func (s *userService) LastMutation() Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *userService) Close(ctx context.Context) error {
	s.list.Dispose()
	s.items.Dispose()
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close client: %w", err)
	}
	return nil
}
