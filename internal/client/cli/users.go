package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/cache"
	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/dmitrijs2005/userdesk/internal/client/views"
)

// requestCtx bounds a command by the configured request timeout.
func (a *App) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// currentUsers returns the user list entry, waiting for the first load.
// Subscribing retries a list whose last fetch failed.
func (a *App) currentUsers(ctx context.Context) (cache.Entry[[]models.User], error) {
	sub := a.users.Users()
	defer sub.Close()

	e := sub.Read()
	if e.HasData {
		return e, nil
	}

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()
	return sub.Wait(ctx)
}

// List prints the user table.
func (a *App) List(ctx context.Context) error {
	e, err := a.currentUsers(ctx)
	if err != nil {
		return err
	}
	return views.RenderUserList(a.out, views.Project(e), a.table)
}

// Show prints the details of one user.
func (a *App) Show(ctx context.Context, id int64) error {
	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	u, err := a.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			fmt.Fprintf(a.out, "User %d not found.\n", id)
			return nil
		}
		return err
	}
	return views.RenderUser(a.out, u)
}

// Add prompts for a new user and creates it.
func (a *App) Add(ctx context.Context) error {
	d, err := a.promptDraft(models.UserDraft{Role: models.RoleViewer})
	if err != nil {
		return err
	}

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	u, err := a.users.Create(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %d created.\n", u.ID)
	return nil
}

// Edit triggers the edit action of a listed user.
func (a *App) Edit(ctx context.Context, id int64) error {
	if err := a.syncRows(ctx); err != nil {
		return err
	}
	return a.table.Edit(ctx, id)
}

// Delete triggers the delete action of a listed user.
func (a *App) Delete(ctx context.Context, id int64) error {
	if err := a.syncRows(ctx); err != nil {
		return err
	}
	return a.table.Delete(ctx, id)
}

// Refresh refetches the user list in the background.
func (a *App) Refresh(ctx context.Context) error {
	a.users.Refresh()
	fmt.Fprintln(a.out, "Refreshing user list.")
	return nil
}

// OnEdit prompts for new values, prefilled with the user's current ones,
// and saves them.
func (a *App) OnEdit(ctx context.Context, id int64) error {
	rctx, cancel := a.requestCtx(ctx)
	current, err := a.users.Get(rctx, id)
	cancel()
	if err != nil {
		return err
	}

	d, err := a.promptDraft(current.Draft())
	if err != nil {
		return err
	}

	rctx, cancel = a.requestCtx(ctx)
	defer cancel()

	if _, err := a.users.Update(rctx, id, d); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %d updated.\n", id)
	return nil
}

// OnDelete asks for confirmation and deletes the user.
func (a *App) OnDelete(ctx context.Context, id int64) error {
	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete user %d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	if err := a.users.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %d deleted.\n", id)
	return nil
}

func (a *App) syncRows(ctx context.Context) error {
	e, err := a.currentUsers(ctx)
	if err != nil {
		return err
	}
	if e.IsError() && !e.HasData {
		return fmt.Errorf("failed to load users: %s", views.ErrorMessage(e.Err))
	}
	a.table.SetRows(e.Data)
	return nil
}

func (a *App) promptDraft(current models.UserDraft) (models.UserDraft, error) {
	var (
		d   models.UserDraft
		err error
	)

	if d.Name, err = GetDefaultText(a.reader, "Name", current.Name, a.out); err != nil {
		return d, err
	}
	if d.Email, err = GetDefaultText(a.reader, "Email", current.Email, a.out); err != nil {
		return d, err
	}

	role, err := GetDefaultText(a.reader, "Role (admin, editor, viewer)", string(current.Role), a.out)
	if err != nil {
		return d, err
	}
	if d.Role, err = models.ParseRole(role); err != nil {
		return d, err
	}

	if d.Department, err = GetDefaultText(a.reader, "Department", current.Department, a.out); err != nil {
		return d, err
	}
	return d, nil
}
