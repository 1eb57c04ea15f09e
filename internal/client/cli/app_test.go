package cli

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/client/config"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/userkeeper/internal/server/rest"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewApp(t *testing.T) {
	_, err := NewApp(&config.Config{ServerURL: "not a url", RequestTimeout: time.Second})
	require.Error(t, err)

	app, err := NewApp(&config.Config{ServerURL: "http://127.0.0.1:3000", RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.getStatus())
}

// startServer runs a real userkeeper HTTP server on a loopback port.
func startServer(t *testing.T) string {
	t.Helper()

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager([]byte("cli-test"), time.Hour)
	require.NoError(t, err)

	svc := services.NewUserService(users.NewInMemoryRepository(), hasher, tokens, logging.NopLogger{})
	_, err = svc.Seed(context.Background(), "Admin", "admin@example.com", "password123")
	require.NoError(t, err)

	srv := rest.NewHTTPServer(rest.Options{ShutdownTimeout: time.Second}, logging.NopLogger{}, svc, auth.NewGate(tokens))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.Serve(ctx, ln)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return "http://" + ln.Addr().String()
}

func TestRun_EndToEnd(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "password123")

	url := startServer(t)
	api, err := client.NewHTTPClient(url, 2*time.Second)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return api.Ping(context.Background()) == nil
	}, 5*time.Second, 20*time.Millisecond)

	input := "list\n" +
		"login\nadmin@example.com\n" +
		"add\nBob\nbob@example.com\n" +
		"list\n" +
		"delete\n2\n" +
		"logout\n" +
		"exit\n"

	var out bytes.Buffer
	app := &App{config: &config.Config{ServerURL: url}, api: api, reader: rdr(input), out: &out}
	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Login successful")
	assert.Contains(t, s, "Created user 2")
	assert.Contains(t, s, "bob@example.com")
	assert.Contains(t, s, "Deleted user 2")
	assert.Contains(t, s, "Logged out")
	assert.False(t, app.isLoggedIn())

	_, err = api.ListUsers(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}
