package views

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

// RenderUserList writes the user list page for s: a loading line, the
// error line, or the table.
func RenderUserList(w io.Writer, s QueryState[[]models.User], t *Table) error {
	switch {
	case s.IsLoading:
		_, err := fmt.Fprintln(w, "Loading users...")
		return err
	case s.IsError:
		_, err := fmt.Fprintf(w, "failed to load users: %s\n", ErrorMessage(s.Err))
		return err
	}

	if len(s.Data) == 0 {
		_, err := fmt.Fprintln(w, "No users.")
		return err
	}
	if err := t.Render(w, s.Data); err != nil {
		return err
	}
	if s.IsFetching {
		_, err := fmt.Fprintln(w, "(refreshing)")
		return err
	}
	return nil
}

// RenderUser writes the details of a single user.
func RenderUser(w io.Writer, u *models.User) error {
	created := "-"
	if u.CreatedAt != nil {
		created = u.CreatedAt.Format("2006-01-02 15:04")
	}
	_, err := fmt.Fprintf(w, "ID:         %d\nName:       %s\nEmail:      %s\nRole:       %s\nDepartment: %s\nCreated:    %s\n",
		u.ID, u.Name, u.Email, u.Role.Label(), u.Department, created)
	return err
}
