package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// isTerminal reports whether stdin is interactive; the prompt is only
// printed when it is.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, id int64) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Refresh(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a,
// writing prompts and messages to out. Errors returned by handlers are
// printed and the loop goes on. The loop exits on EOF, on "exit"/"quit", or
// once ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	interactive := isTerminal()

	for ctx.Err() == nil {
		if interactive {
			fmt.Fprintf(out, "userdesk (%s)> ", statusFn())
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 {
			if quit := dispatch(ctx, a, out, parts[0], parts[1:]); quit {
				return
			}
		}

		if errors.Is(readErr, io.EOF) {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, out io.Writer, cmd string, args []string) bool {
	var err error

	switch cmd {
	case "help":
		fmt.Fprintln(out, "Available commands: (l)ist, show <id>, add, edit <id>, delete <id>, refresh, exit")

	case "l", "list":
		err = a.List(ctx)

	case "show", "edit", "delete":
		id, ok := parseID(args)
		if !ok {
			fmt.Fprintf(out, "Usage: %s <id>\n", cmd)
			return false
		}
		switch cmd {
		case "show":
			err = a.Show(ctx, id)
		case "edit":
			err = a.Edit(ctx, id)
		default:
			err = a.Delete(ctx, id)
		}

	case "add":
		err = a.Add(ctx)

	case "refresh":
		err = a.Refresh(ctx)

	case "exit", "quit":
		fmt.Fprintln(out, "Bye!")
		return true

	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
	}

	if err != nil {
		fmt.Fprintln(out, "Error:", err.Error())
	}
	return false
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
