package auth

import (
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// GateState is where a request stands in the access check. Authenticated
// and Rejected are terminal.
type GateState int

const (
	StateUnauthenticated GateState = iota
	StateAuthenticated
	StateRejected
)

func (s GateState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return "unauthenticated"
	}
}

// Decision is the outcome of Gate.Check. Identity is set only when
// authenticated; Err is common.ErrMissingToken or wraps
// common.ErrInvalidToken when rejected.
type Decision struct {
	State    GateState
	Identity *Identity
	Err      error
}

func (d Decision) Allowed() bool {
	return d.State == StateAuthenticated
}

// Gate turns an Authorization header value into an allow/deny decision.
type Gate struct {
	verifier TokenVerifier
}

func NewGate(v TokenVerifier) *Gate {
	return &Gate{verifier: v}
}

func (g *Gate) Check(authorization string) Decision {
	token, err := BearerToken(authorization)
	if err != nil {
		return Decision{State: StateRejected, Err: err}
	}

	identity, err := g.verifier.Verify(token)
	if err != nil {
		return Decision{State: StateRejected, Err: err}
	}

	return Decision{State: StateAuthenticated, Identity: identity}
}

// BearerToken extracts the token from "Bearer <token>". A value with no
// token part is missing; a token under another scheme is invalid.
func BearerToken(authorization string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	token = strings.TrimSpace(token)

	if !found || token == "" {
		return "", common.ErrMissingToken
	}
	if !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrInvalidToken
	}
	return token, nil
}
