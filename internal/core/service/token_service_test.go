package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

var issuedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", WithClock(fixedClock(issuedAt)))

	for _, subject := range []string{"65a1f0c2e4b0a1b2c3d4e5f6", "u", "user with spaces"} {
		token, err := svc.Issue(subject)
		if err != nil {
			t.Fatalf("issue %q: %v", subject, err)
		}
		got, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("verify %q: %v", subject, err)
		}
		if got != subject {
			t.Fatalf("subject = %q, want %q", got, subject)
		}
	}
}

func TestTokenService_ClaimsCarryOneHourExpiry(t *testing.T) {
	svc := NewTokenService("secret", WithClock(fixedClock(issuedAt)))
	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("sub = %q", claims.Subject)
	}
	if !claims.ExpiresAt.Time.Equal(issuedAt.Add(time.Hour)) {
		t.Fatalf("exp = %v, want %v", claims.ExpiresAt.Time, issuedAt.Add(time.Hour))
	}
	if !claims.IssuedAt.Time.Equal(issuedAt) {
		t.Fatalf("iat = %v", claims.IssuedAt.Time)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	token, err := NewTokenService("secret", WithClock(fixedClock(issuedAt))).Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	atLimit := NewTokenService("secret", WithClock(fixedClock(issuedAt.Add(TokenLifetime))))
	if _, err := atLimit.Verify(token); err != nil {
		t.Fatalf("token must still be valid at exactly one hour: %v", err)
	}

	early := NewTokenService("secret", WithClock(fixedClock(issuedAt.Add(TokenLifetime-time.Second))))
	if _, err := early.Verify(token); err != nil {
		t.Fatalf("token must be valid before expiry: %v", err)
	}

	for _, past := range []time.Duration{500 * time.Millisecond, time.Second} {
		late := NewTokenService("secret", WithClock(fixedClock(issuedAt.Add(TokenLifetime+past))))
		if _, err := late.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
			t.Fatalf("%v past expiry: expected ErrTokenExpired, got %v", past, err)
		}
	}
}

func TestTokenService_TamperDetection(t *testing.T) {
	svc := NewTokenService("secret", WithClock(fixedClock(issuedAt)))
	token, err := svc.Issue("65a1f0c2e4b0a1b2c3d4e5f6")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape %q", token)
	}

	for _, segment := range []int{1, 2} {
		raw, err := base64.RawURLEncoding.DecodeString(parts[segment])
		if err != nil {
			t.Fatalf("decode segment %d: %v", segment, err)
		}
		for i := range raw {
			for bit := 0; bit < 8; bit++ {
				flipped := append([]byte(nil), raw...)
				flipped[i] ^= 1 << bit

				tampered := append([]string(nil), parts...)
				tampered[segment] = base64.RawURLEncoding.EncodeToString(flipped)

				if _, err := svc.Verify(strings.Join(tampered, ".")); err == nil {
					t.Fatalf("segment %d byte %d bit %d: tampered token accepted", segment, i, bit)
				}
			}
		}
	}
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	svc := NewTokenService("secret", WithClock(fixedClock(issuedAt)))
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}

	otherSecret, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	otherAlg, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte("secret"))
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("secret"))

	tests := map[string]string{
		"wrong secret":    otherSecret,
		"wrong algorithm": otherAlg,
		"alg none":        unsigned,
		"no expiry":       noExpiry,
		"no subject":      noSubject,
		"garbage":         "not-a-token",
		"empty":           "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestTokenService_IssueRequiresSubjectAndSecret(t *testing.T) {
	if _, err := NewTokenService("secret").Issue(""); err == nil {
		t.Fatalf("expected error for empty subject")
	}
	if _, err := NewTokenService("").Issue("u1"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
