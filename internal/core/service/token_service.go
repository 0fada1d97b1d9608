package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// TokenLifetime is how long an issued token stays valid. There is no
// revocation list: a leaked token is usable until it expires.
const TokenLifetime = time.Hour

// TokenService signs and verifies HS256 bearer tokens carrying the user id in
// the "sub" claim.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, opts ...TokenOption) *TokenService {
	s := &TokenService{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue returns a signed token for subject that expires TokenLifetime from now.
func (s *TokenService) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("issue token: empty subject")
	}
	if len(s.secret) == 0 {
		return "", errors.New("issue token: signing secret not configured")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the token subject. A token
// stays valid up to and including the second named by exp.
// It fails with domain.ErrTokenExpired or domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	switch {
	case err != nil:
		return "", domain.ErrTokenInvalid
	case claims.ExpiresAt == nil, claims.Subject == "":
		return "", domain.ErrTokenInvalid
	case s.now().After(claims.ExpiresAt.Time):
		return "", domain.ErrTokenExpired
	}
	return claims.Subject, nil
}
