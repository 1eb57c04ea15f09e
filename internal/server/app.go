// Package server wires configuration, storage, authentication and the HTTP
// transport into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/userkeeper/internal/server/rest"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *services.UserService
	httpServer  *rest.HTTPServer
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	hasher, err := auth.NewPasswordHasher(c.PasswordHasher, c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	tokens, err := auth.NewTokenManager([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token manager init error: %w", err)
	}

	us := services.NewUserService(users.NewInMemoryRepository(), hasher, tokens, logger)

	if c.SeedUserEmail != "" {
		u, err := us.Seed(context.Background(), c.SeedUserName, c.SeedUserEmail, c.SeedUserPassword)
		if err != nil {
			return nil, fmt.Errorf("seed user error: %w", err)
		}
		logger.Info(context.Background(), "seed user ready", "user_id", u.ID, "email", u.Email)
	}

	hs := rest.NewHTTPServer(rest.Options{
		Address:            c.EndpointAddrHTTP,
		ShutdownTimeout:    c.ShutdownTimeout,
		ExposePasswordHash: c.ExposePasswordHash,
	}, logger, us, auth.NewGate(tokens))

	return &App{config: c, logger: logger, userService: us, httpServer: hs}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Run blocks until ctx is cancelled, a stop signal arrives or the HTTP
// server fails. A server failure is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return runErr
}
