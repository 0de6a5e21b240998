// Package models holds the users API records.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
)

// Roles accepted by the API.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User is a stored user record.
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserInput is the body of create and update requests. CreatedAt is only
// honored on create; when absent the server stamps the current time.
type UserInput struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Department string     `json:"department"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// Validate rejects inputs the API refuses to store.
func (in UserInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if !common.PlausibleEmail(in.Email) {
		return fmt.Errorf("%w: invalid email %q", common.ErrValidation, in.Email)
	}
	switch in.Role {
	case RoleAdmin, RoleEditor, RoleViewer:
	default:
		return fmt.Errorf("%w: unknown role %q", common.ErrValidation, in.Role)
	}
	return nil
}
