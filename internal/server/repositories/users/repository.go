// Package users stores user records. Implementations return
// common.ErrNotFound for missing ids.
package users

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
