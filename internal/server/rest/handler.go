package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

const (
	msgUserNotFound   = "user not found"
	msgInvalidPayload = "invalid JSON payload"
	msgInvalidUserID  = "invalid user id"
)

// decodeBody parses the request body into v. An empty body leaves v zeroed,
// so missing fields are reported by the service rather than the parser.
func decodeBody(c *fiber.Ctx, v any) bool {
	if len(c.Body()) == 0 {
		return true
	}
	return c.BodyParser(v) == nil
}

func (s *HTTPServer) Health(c *fiber.Ctx) error {
	return JSON(c, http.StatusOK, fiber.Map{"status": "ok"})
}

func (s *HTTPServer) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !decodeBody(c, &req) {
		return Error(c, http.StatusBadRequest, msgInvalidPayload)
	}

	token, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return Error(c, http.StatusBadRequest, msgUserNotFound)
		case errors.Is(err, common.ErrInvalidCredentials):
			return Error(c, http.StatusBadRequest, common.ErrInvalidCredentials.Error())
		default:
			return err
		}
	}

	return JSON(c, http.StatusOK, LoginResponse{AccessToken: token})
}

func (s *HTTPServer) ListUsers(c *fiber.Ctx) error {
	if id, ok := IdentityFrom(c); ok {
		s.logger.Debug(c.UserContext(), "listing users", "requested_by", id.UserID)
	}

	list, err := s.users.List(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, s.userResponse(u))
	}
	return JSON(c, http.StatusOK, out)
}

func (s *HTTPServer) CreateUser(c *fiber.Ctx) error {
	var req userRequest
	if !decodeBody(c, &req) {
		return Error(c, http.StatusBadRequest, msgInvalidPayload)
	}

	user, err := s.users.Create(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrMissingFields) {
			return Error(c, http.StatusBadRequest, common.ErrMissingFields.Error())
		}
		return err
	}

	return JSON(c, http.StatusCreated, s.userResponse(*user))
}

func (s *HTTPServer) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, http.StatusBadRequest, msgInvalidUserID)
	}

	var req userRequest
	if !decodeBody(c, &req) {
		return Error(c, http.StatusBadRequest, msgInvalidPayload)
	}

	user, err := s.users.Update(c.UserContext(), int64(id), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return Error(c, http.StatusNotFound, msgUserNotFound)
		}
		return err
	}

	return JSON(c, http.StatusOK, s.userResponse(*user))
}

func (s *HTTPServer) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, http.StatusBadRequest, msgInvalidUserID)
	}

	if err := s.users.Delete(c.UserContext(), int64(id)); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return Error(c, http.StatusNotFound, msgUserNotFound)
		}
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}
