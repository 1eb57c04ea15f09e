package client

import "context"

// User mirrors the server's user payload. Password holds the stored hash
// and is empty unless the server exposes hashes.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, email string, password []byte) error
	Logout()
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, name, email string, password []byte) (*User, error)
	UpdateUser(ctx context.Context, id int64, name, email string, password []byte) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}
