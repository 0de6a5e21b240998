package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/userdesk/internal/client/cache"
	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/dmitrijs2005/userdesk/internal/client/services"
	"github.com/dmitrijs2005/userdesk/internal/client/views"
	"github.com/dmitrijs2005/userdesk/internal/logging"
)

type App struct {
	config *config.Config
	users  services.UserService
	logger logging.Logger
	table  *views.Table
	reader *bufio.Reader
	out    io.Writer

	// sub keeps the user list subscribed for the lifetime of Run.
	sub *cache.Subscription[[]models.User]
}

func NewApp(c *config.Config) (*App, error) {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewText(os.Stderr, level)

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)
	if err != nil {
		return nil, err
	}

	us := services.NewUserService(apiClient,
		services.WithLogger(logger),
		services.WithCacheOptions(cache.WithFetchTimeout(c.RequestTimeout)),
	)

	return newApp(c, us, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, us services.UserService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		users:  us,
		logger: logger.With("module", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.table = views.NewTable(views.UserColumns(), a)
	return a
}

// Run subscribes to the user list and serves the REPL until the user exits
// or ctx is done. The user service is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.users.Close(context.Background()); err != nil {
			a.logger.Warn(ctx, "close", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "userdesk console (type 'help' for commands)")

	a.sub = a.users.Users()
	defer a.sub.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.watchUsers(gctx, a.sub)
		return nil
	})

	g.Go(func() error {
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			runREPL(gctx, a, a.status, a.reader, a.out)
		}()

		// stdin reads cannot be interrupted; on cancel the reader goroutine
		// is left to die with the process
		select {
		case <-done:
		case <-gctx.Done():
		}
		return nil
	})

	return g.Wait()
}

// watchUsers logs every state change of the user list.
func (a *App) watchUsers(ctx context.Context, sub *cache.Subscription[[]models.User]) {
	for {
		select {
		case e, ok := <-sub.Updates():
			if !ok {
				return
			}
			if e.IsError() {
				a.logger.Warn(ctx, "user list unavailable", "error", e.Err)
				continue
			}
			a.logger.Debug(ctx, "user list", "status", e.Status.String(), "users", len(e.Data), "stale", e.Stale)
		case <-ctx.Done():
			return
		}
	}
}

// status is shown in the prompt.
func (a *App) status() string {
	if a.sub == nil {
		return ""
	}
	s := a.sub.Read()
	switch {
	case s.IsError() && errors.Is(s.Err, client.ErrUnavailable):
		return "offline"
	case s.IsError():
		return "error"
	case s.HasData:
		return fmt.Sprintf("%d users", len(s.Data))
	default:
		return "loading"
	}
}
