// Package rest exposes the user service over HTTP using fiber.
package rest

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type Options struct {
	Address            string
	ShutdownTimeout    time.Duration
	ExposePasswordHash bool
}

type HTTPServer struct {
	address            string
	shutdownTimeout    time.Duration
	exposePasswordHash bool
	users              *services.UserService
	gate               *auth.Gate
	logger             logging.Logger
	app                *fiber.App
}

func NewHTTPServer(opts Options, l logging.Logger, us *services.UserService, gate *auth.Gate) *HTTPServer {
	s := &HTTPServer{
		address:            opts.Address,
		shutdownTimeout:    opts.ShutdownTimeout,
		exposePasswordHash: opts.ExposePasswordHash,
		users:              us,
		gate:               gate,
		logger:             l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "userkeeper",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.registerRoutes()

	return s
}

// App exposes the fiber application, mainly for app.Test in tests.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then waits up to
// the shutdown timeout for in-flight requests. ln is closed on shutdown even
// if fiber had not picked it up yet.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	if ctx.Err() != nil {
		return ln.Close()
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err.Error())
		}
		_ = ln.Close()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	if err := s.app.Listener(ln); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
