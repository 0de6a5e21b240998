package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	err   error
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeExec) List(ctx context.Context) error { return f.record("list") }
func (f *fakeExec) Show(ctx context.Context, id int64) error {
	return f.record(fmt.Sprintf("show %d", id))
}
func (f *fakeExec) Add(ctx context.Context) error { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context, id int64) error {
	return f.record(fmt.Sprintf("edit %d", id))
}
func (f *fakeExec) Delete(ctx context.Context, id int64) error {
	return f.record(fmt.Sprintf("delete %d", id))
}
func (f *fakeExec) Refresh(ctx context.Context) error { return f.record("refresh") }

// interactive overrides the terminal check for the duration of the test.
func interactive(t *testing.T, v bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return v }
	t.Cleanup(func() { isTerminal = orig })
}

// printed splits REPL output into lines.
func printed(buf *bytes.Buffer) []string {
	s := strings.TrimRight(buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func lines(s ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(s, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	interactive(t, false)

	var buf bytes.Buffer
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, lines(
		"help",
		"",
		"l",
		"list",
		"show 3",
		"add",
		"edit 4",
		"delete 5",
		"refresh",
		"exit",
		"list",
	), &buf)

	out := printed(&buf)
	require.Equal(t, []string{"list", "list", "show 3", "add", "edit 4", "delete 5", "refresh"}, exec.calls)
	require.Contains(t, out[0], "Available commands")
	require.Equal(t, "Bye!", out[len(out)-1])
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	interactive(t, false)

	var buf bytes.Buffer
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, lines(
		"show",
		"edit abc",
		"delete -1",
		"show 1 2",
		"frobnicate",
		"quit",
	), &buf)

	require.Empty(t, exec.calls)
	require.Equal(t, []string{
		"Usage: show <id>",
		"Usage: edit <id>",
		"Usage: delete <id>",
		"Usage: show <id>",
		"Unknown command: frobnicate",
		"Bye!",
	}, printed(&buf))
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	interactive(t, false)

	var buf bytes.Buffer
	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, lines("list"), &buf)

	require.Equal(t, []string{"list"}, exec.calls)
	require.Equal(t, []string{"Error: boom"}, printed(&buf))
}

func TestRunREPL_PromptOnlyWhenInteractive(t *testing.T) {
	interactive(t, true)

	var buf bytes.Buffer
	runREPL(context.Background(), &fakeExec{}, func() string { return "3 users" }, lines("exit"), &buf)
	require.Equal(t, "userdesk (3 users)> Bye!\n", buf.String())
}

func TestRunREPL_StopsOnCanceledContext(t *testing.T) {
	interactive(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, lines("list", "list"), io.Discard)
	require.Empty(t, exec.calls)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	interactive(t, false)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("refresh")), io.Discard)
	require.Equal(t, []string{"refresh"}, exec.calls)
}
