package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type userRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPClient validates serverURL and returns a client for it.
func NewHTTPClient(serverURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", serverURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: host is empty", serverURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	c.accessToken = t
	c.mu.Unlock()
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, false)
}

// Login exchanges credentials for an access token and keeps it for later
// calls. A failed login clears any previous token. password is copied into
// the request, so the caller may wipe it as soon as Login returns.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: string(password)}, &resp, false)
	if err != nil {
		c.setToken("")
		return err
	}
	if resp.AccessToken == "" {
		c.setToken("")
		return fmt.Errorf("empty access token in login response")
	}
	c.setToken(resp.AccessToken)
	return nil
}

func (c *HTTPClient) Logout() {
	c.setToken("")
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]User, error) {
	if c.token() == "" {
		return nil, ErrUnauthorized
	}

	var list []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, name, email string, password []byte) (*User, error) {
	var u User
	req := userRequest{Name: name, Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/users", req, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser replaces name and email. An empty password keeps the stored one.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, name, email string, password []byte) (*User, error) {
	var u User
	req := userRequest{Name: name, Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPut, userPath(id), req, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil, false)
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, withToken bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		// The encoded body may carry a password.
		defer common.WipeByteArray(b)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var er errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &er); err != nil || er.Message == "" {
		er.Message = http.StatusText(resp.StatusCode)
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: er.Message}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.kind = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		apiErr.kind = ErrBadRequest
	case resp.StatusCode >= http.StatusInternalServerError:
		apiErr.kind = ErrUnavailable
	default:
		apiErr.kind = errors.New(http.StatusText(resp.StatusCode))
	}
	return apiErr
}
