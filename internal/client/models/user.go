// Package models defines the user records handled by the console.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleEditor, RoleViewer}

var roleLabels = map[Role]string{
	RoleAdmin:  "Administrator",
	RoleEditor: "Editor",
	RoleViewer: "Viewer",
}

// ParseRole returns the Role named by s (case-insensitive, surrounding
// spaces ignored).
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if _, ok := roleLabels[r]; !ok {
		return fmt.Errorf("%w: unknown role %q", common.ErrValidation, string(r))
	}
	return nil
}

// Label is the human-readable role name shown in tables.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	role := Role(s)
	if err := role.Validate(); err != nil {
		return err
	}
	*r = role
	return nil
}

// User is a user record as returned by the API. ID is server-assigned.
type User struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Department string     `json:"department"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// Draft returns the mutable part of u.
func (u User) Draft() UserDraft {
	return UserDraft{Name: u.Name, Email: u.Email, Role: u.Role, Department: u.Department}
}

// UserDraft carries the fields sent on create and update.
type UserDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// Validate checks the draft before it is submitted. The server validates
// again; this only catches obvious form mistakes early.
func (d UserDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if !common.PlausibleEmail(d.Email) {
		return fmt.Errorf("%w: invalid email %q", common.ErrValidation, d.Email)
	}
	return d.Role.Validate()
}
