// Package services holds the users API business logic on top of the
// repositories.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).Get(ctx, id)
}

// Create validates in and stores a new user. in.CreatedAt is kept when the
// caller supplied it.
func (s *UserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created := s.now().UTC()
	if in.CreatedAt != nil {
		created = in.CreatedAt.UTC()
	}

	u := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		Department: in.Department,
		CreatedAt:  created,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Update replaces every editable field of user id.
func (s *UserService) Update(ctx context.Context, id int64, in models.UserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		current.Name = in.Name
		current.Email = in.Email
		current.Role = in.Role
		current.Department = in.Department

		updated, err = repo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}
