package client

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

// Client is the remote users API as seen by the console.
type Client interface {
	FetchAll(ctx context.Context) ([]models.User, error)
	FetchOne(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, draft models.UserDraft) (*models.User, error)
	Update(ctx context.Context, id int64, draft models.UserDraft) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}
