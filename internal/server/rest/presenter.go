package rest

import (
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// UserResponse is the wire form of a user. Password carries the stored
// hash and is filled only when hash exposure is enabled.
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func (s *HTTPServer) userResponse(u models.User) UserResponse {
	r := UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	if s.exposePasswordHash {
		r.Password = u.PasswordHash
	}
	return r
}
