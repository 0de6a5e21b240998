package views

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/cache"
	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeActions struct {
	edited  []int64
	deleted []int64
	err     error
}

func (f *fakeActions) OnEdit(_ context.Context, id int64) error {
	f.edited = append(f.edited, id)
	return f.err
}

func (f *fakeActions) OnDelete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

var sample = []models.User{
	{ID: 1, Name: "Ann", Email: "ann@x.io", Role: models.RoleAdmin, Department: "IT"},
	{ID: 2, Name: "Bob", Email: "bob@x.io", Role: models.RoleViewer, Department: "Sales"},
}

func TestProject(t *testing.T) {
	tests := []struct {
		name  string
		entry cache.Entry[[]models.User]
		want  QueryState[[]models.User]
	}{
		{
			name:  "idle",
			entry: cache.Entry[[]models.User]{Status: cache.StatusIdle},
			want:  QueryState[[]models.User]{IsLoading: true},
		},
		{
			name:  "first load",
			entry: cache.Entry[[]models.User]{Status: cache.StatusLoading},
			want:  QueryState[[]models.User]{IsLoading: true, IsFetching: true},
		},
		{
			name:  "refetch keeps data",
			entry: cache.Entry[[]models.User]{Status: cache.StatusLoading, Data: sample, HasData: true, Stale: true},
			want:  QueryState[[]models.User]{Data: sample, HasData: true, IsFetching: true},
		},
		{
			name:  "success",
			entry: cache.Entry[[]models.User]{Status: cache.StatusSuccess, Data: sample, HasData: true},
			want:  QueryState[[]models.User]{Data: sample, HasData: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Project(tt.entry))
		})
	}

	boom := errors.New("boom")
	s := Project(cache.Entry[[]models.User]{Status: cache.StatusError, Err: boom})
	require.True(t, s.IsError)
	require.False(t, s.IsLoading)
	require.ErrorIs(t, s.Err, boom)
}

func TestErrorMessage(t *testing.T) {
	require.Equal(t, "", ErrorMessage(nil))
	require.Equal(t, "Internal Server Error",
		ErrorMessage(&client.TransportError{StatusCode: 500, Message: "Internal Server Error"}))
	require.Equal(t, "plain", ErrorMessage(errors.New("plain")))
}

func TestTable_Render(t *testing.T) {
	tb := NewTable(UserColumns(), &fakeActions{})

	var buf bytes.Buffer
	require.NoError(t, tb.Render(&buf, sample))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"ID", "Name", "Email", "Role", "Department", "Actions"}, strings.Fields(lines[0]))
	require.Contains(t, lines[1], "Administrator")
	require.Contains(t, lines[1], "edit 1 | delete 1")
	require.Contains(t, lines[2], "Viewer")
	require.Contains(t, lines[2], "bob@x.io")
}

func TestTable_RenderWithoutActions(t *testing.T) {
	tb := NewTable(UserColumns()[:1], nil)

	var buf bytes.Buffer
	require.NoError(t, tb.Render(&buf, sample[:1]))
	require.Equal(t, "ID  Name\n1   Ann\n", buf.String())
}

func TestTable_Actions(t *testing.T) {
	fa := &fakeActions{}
	tb := NewTable(UserColumns(), fa)
	require.NoError(t, tb.Render(&bytes.Buffer{}, sample))

	require.NoError(t, tb.Edit(context.Background(), 1))
	require.NoError(t, tb.Delete(context.Background(), 2))
	require.Equal(t, []int64{1}, fa.edited)
	require.Equal(t, []int64{2}, fa.deleted)

	err := tb.Delete(context.Background(), 9)
	require.ErrorIs(t, err, ErrUnknownRow)
	require.Equal(t, []int64{2}, fa.deleted)

	fa.err = errors.New("api down")
	require.EqualError(t, tb.Edit(context.Background(), 2), "api down")
}

func TestTable_NoActions(t *testing.T) {
	tb := NewTable(UserColumns(), nil)
	require.NoError(t, tb.Render(&bytes.Buffer{}, sample))
	require.Error(t, tb.Edit(context.Background(), 1))
}

func TestRenderUserList(t *testing.T) {
	tb := NewTable(UserColumns(), &fakeActions{})

	var buf bytes.Buffer
	require.NoError(t, RenderUserList(&buf, QueryState[[]models.User]{IsLoading: true}, tb))
	require.Equal(t, "Loading users...\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderUserList(&buf, QueryState[[]models.User]{
		IsError: true,
		Err:     &client.TransportError{StatusCode: 0, Message: "Network Error"},
	}, tb))
	require.Equal(t, "failed to load users: Network Error\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderUserList(&buf, QueryState[[]models.User]{HasData: true}, tb))
	require.Equal(t, "No users.\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderUserList(&buf, QueryState[[]models.User]{Data: sample, HasData: true, IsFetching: true}, tb))
	require.Contains(t, buf.String(), "Ann")
	require.True(t, strings.HasSuffix(buf.String(), "(refreshing)\n"))
}

func TestRenderUser(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	u := sample[0]
	u.CreatedAt = &ts

	var buf bytes.Buffer
	require.NoError(t, RenderUser(&buf, &u))
	require.Contains(t, buf.String(), "Role:       Administrator")
	require.Contains(t, buf.String(), "Created:    2024-05-01 10:30")

	buf.Reset()
	require.NoError(t, RenderUser(&buf, &sample[1]))
	require.Contains(t, buf.String(), "Created:    -")
}

func TestTable_SetRows(t *testing.T) {
	fa := &fakeActions{}
	tb := NewTable(UserColumns(), fa)

	require.ErrorIs(t, tb.Edit(context.Background(), 1), ErrUnknownRow)

	tb.SetRows(sample)
	require.NoError(t, tb.Edit(context.Background(), 1))
	require.Equal(t, []int64{1}, fa.edited)
}
