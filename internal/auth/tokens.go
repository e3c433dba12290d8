package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller behind a bearer token.
type Identity struct {
	Username string
	// Admin holds the isAdmin claim exactly as decoded from the token payload.
	Admin    any
	IssuedAt time.Time
}

// IsAdmin reports whether the admin claim is the boolean true. Any other
// value, including the string "true", is not admin.
func (i *Identity) IsAdmin() bool {
	if i == nil {
		return false
	}
	admin, ok := i.Admin.(bool)
	return ok && admin
}

type claims struct {
	Username string `json:"username"`
	IsAdmin  any    `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens with a secret handed in by the caller.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService makes a token service. Zero ttl issues tokens without expiry.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// Sign issues a token for username.
func (s *TokenService) Sign(username string, isAdmin bool) (string, error) {
	if username == "" {
		return "", errors.New("empty username")
	}
	now := s.now()
	c := claims{
		Username:         username,
		IsAdmin:          isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	}
	if s.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tok, nil
}

// Verify checks the signature, algorithm and expiry of token and returns its identity.
func (s *TokenService) Verify(token string) (*Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if c.Username == "" {
		return nil, errors.New("verify token: no username in payload")
	}
	id := &Identity{Username: c.Username, Admin: c.IsAdmin}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	return id, nil
}
