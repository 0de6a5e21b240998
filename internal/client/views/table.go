package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

// ErrUnknownRow is returned when an action targets an id that is not among
// the rendered rows.
var ErrUnknownRow = errors.New("no such row")

// Column is one table column. Render receives the whole row.
type Column struct {
	Key    string
	Header string
	Render func(models.User) string
}

// RowActions receives the per-row intents of a Table.
type RowActions interface {
	OnEdit(ctx context.Context, id int64) error
	OnDelete(ctx context.Context, id int64) error
}

// UserColumns are the columns of the user list.
func UserColumns() []Column {
	return []Column{
		{Key: "name", Header: "Name", Render: func(u models.User) string { return u.Name }},
		{Key: "email", Header: "Email", Render: func(u models.User) string { return u.Email }},
		{Key: "role", Header: "Role", Render: func(u models.User) string { return u.Role.Label() }},
		{Key: "department", Header: "Department", Render: func(u models.User) string { return u.Department }},
	}
}

// Table renders users row by row and dispatches row actions for the rows
// it last rendered.
type Table struct {
	columns []Column
	actions RowActions
	rows    []models.User
}

func NewTable(columns []Column, actions RowActions) *Table {
	return &Table{columns: columns, actions: actions}
}

// SetRows replaces the rows actions are checked against without rendering.
func (t *Table) SetRows(rows []models.User) {
	t.rows = rows
}

// Render writes a header and one line per user. The leading ID column is
// what row actions address.
func (t *Table) Render(w io.Writer, rows []models.User) error {
	t.rows = rows

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "ID")
	for _, c := range t.columns {
		fmt.Fprintf(tw, "\t%s", c.Header)
	}
	if t.actions != nil {
		fmt.Fprint(tw, "\tActions")
	}
	fmt.Fprintln(tw)

	for _, u := range rows {
		fmt.Fprint(tw, strconv.FormatInt(u.ID, 10))
		for _, c := range t.columns {
			fmt.Fprintf(tw, "\t%s", c.Render(u))
		}
		if t.actions != nil {
			fmt.Fprintf(tw, "\tedit %d | delete %d", u.ID, u.ID)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// Edit triggers the edit action of row id.
func (t *Table) Edit(ctx context.Context, id int64) error {
	if err := t.check(id); err != nil {
		return err
	}
	return t.actions.OnEdit(ctx, id)
}

// Delete triggers the delete action of row id.
func (t *Table) Delete(ctx context.Context, id int64) error {
	if err := t.check(id); err != nil {
		return err
	}
	return t.actions.OnDelete(ctx, id)
}

func (t *Table) check(id int64) error {
	if t.actions == nil {
		return errors.New("table has no actions")
	}
	if !slices.ContainsFunc(t.rows, func(u models.User) bool { return u.ID == id }) {
		return fmt.Errorf("%w: %d", ErrUnknownRow, id)
	}
	return nil
}
