package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
)

// SQLiteRepository keeps created_at as RFC 3339 text.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteUser(s scanner) (models.User, error) {
	var (
		u       models.User
		created string
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &created); err != nil {
		return u, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return u, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	u.CreatedAt = t
	return u, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, role, department, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanSQLiteUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanSQLiteUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, department, created_at FROM users WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, role, department, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		user.Name, user.Email, user.Role, user.Department, user.CreatedAt.UTC().Format(time.RFC3339Nano)).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, role = ?, department = ? WHERE id = ?`,
		user.Name, user.Email, user.Role, user.Department, user.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return nil, err
	}
	return r.Get(ctx, user.ID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}
