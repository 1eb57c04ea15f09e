package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a token proves about its bearer.
type Identity struct {
	UserID int64
	Email  string
}

// Claims are the standard registered claims plus the user id and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"id"`
	Email  string `json:"email"`
}

type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// TokenManager issues and verifies HS256 tokens with one process-wide
// secret. It is immutable after construction and safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager fails with common.ErrMissingSecret when secret is empty.
func NewTokenManager(secret []byte, ttl time.Duration) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, common.ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", ttl)
	}

	s := make([]byte, len(secret))
	copy(s, secret)

	return &TokenManager{secret: s, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for identity. Each token gets a random id, so two
// tokens issued in the same second still differ.
func (m *TokenManager) Issue(identity Identity) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", fmt.Errorf("error generating token id: %w", err)
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: identity.UserID,
		Email:  identity.Email,
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks structure, signature and expiry. Every failure wraps
// common.ErrInvalidToken so callers cannot tell which check failed.
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
