package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/client/config"
)

type App struct {
	config   *config.Config
	api      client.Client
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to userkeeper CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			fmt.Fprintf(a.out, "Server %s is not reachable yet\n", a.config.ServerURL)
		} else {
			fmt.Fprintf(a.out, "Health check failed: %v\n", err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
