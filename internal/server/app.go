// Package server runs the development users API: it opens the configured
// database, applies migrations and serves the HTTP routes until the context
// is canceled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/server/config"
	"github.com/dmitrijs2005/userdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userdesk/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSON(os.Stdout, slog.LevelInfo))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, m, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(db, m)

	return &App{config: c, logger: logger, db: db, userService: us}, nil
}

// Run serves HTTP on the configured address until ctx is done, then shuts
// down gracefully and closes the database.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.EndpointAddr)
	if err != nil {
		_ = app.db.Close()
		return fmt.Errorf("listen: %w", err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	defer app.db.Close()

	srv := &http.Server{
		Handler: httpapi.NewHandler(app.userService, app.logger).Router(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(gctx, "Starting app...", "addr", ln.Addr().String(), "driver", app.config.DatabaseDriver)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()

		app.logger.Info(shutdownCtx, "shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
