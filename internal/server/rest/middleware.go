package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ctxKey string

const identityKey ctxKey = "identity"

// requireToken runs the access gate. Rejected requests end here with 403;
// authenticated ones carry the token identity in Locals.
func (s *HTTPServer) requireToken(c *fiber.Ctx) error {
	d := s.gate.Check(c.Get(common.AuthorizationHeaderName))
	if !d.Allowed() {
		s.logger.Debug(c.UserContext(), "access denied", "path", c.Path(), "reason", d.Err.Error())

		if errors.Is(d.Err, common.ErrMissingToken) {
			return Error(c, http.StatusForbidden, common.ErrMissingToken.Error())
		}
		return Error(c, http.StatusForbidden, common.ErrInvalidToken.Error())
	}

	c.Locals(identityKey, d.Identity)
	return c.Next()
}

// IdentityFrom returns the identity stored by requireToken.
func IdentityFrom(c *fiber.Ctx) (*auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(*auth.Identity)
	return id, ok && id != nil
}

// requestLogger tags every response with a request id and logs one line per
// request once the final status is known.
func (s *HTTPServer) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	rid := c.Get(common.RequestIDHeaderName)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(common.RequestIDHeaderName, rid)

	if err := c.Next(); err != nil {
		if herr := s.handleError(c, err); herr != nil {
			_ = c.SendStatus(http.StatusInternalServerError)
		}
	}

	s.logger.Info(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String(),
		"request_id", rid,
	)
	return nil
}

// handleError renders errors that reached the framework: fiber errors keep
// their code and message, anything else becomes a 500.
func (s *HTTPServer) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}

	s.logger.Error(c.UserContext(), "unhandled error", "path", c.Path(), "error", err.Error())
	return Error(c, http.StatusInternalServerError, common.ErrorInternal.Error())
}
