package httpkit

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type testJWTConfig struct{}

func (testJWTConfig) GetJWTSecret() string { return "test-secret" }

func signTestToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       uuid.New().String(),
		"partition": "org_acme_corp",
		"type":      "access",
		"exp":       now.Add(ttl).Unix(),
		"iat":       now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestParseAccessClaimsValidToken(t *testing.T) {
	token := signTestToken(t, "test-secret", time.Hour)

	claims, err := ParseAccessClaims(token, testJWTConfig{})
	if err != nil {
		t.Fatalf("ParseAccessClaims failed: %v", err)
	}
	if claims["partition"] != "org_acme_corp" {
		t.Fatalf("partition claim = %v, want org_acme_corp", claims["partition"])
	}
}

func TestParseAccessClaimsExpiredToken(t *testing.T) {
	token := signTestToken(t, "test-secret", -time.Minute)

	_, err := ParseAccessClaims(token, testJWTConfig{})
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expired token error = %v, want ErrTokenExpired", err)
	}
}

func TestParseAccessClaimsMalformedToken(t *testing.T) {
	_, err := ParseAccessClaims("not-a-jwt", testJWTConfig{})
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("malformed token error = %v, want ErrTokenInvalid", err)
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Fatal("malformed token reported as expired")
	}
}

func TestParseAccessClaimsWrongSecret(t *testing.T) {
	token := signTestToken(t, "other-secret", time.Hour)

	_, err := ParseAccessClaims(token, testJWTConfig{})
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("forged token error = %v, want ErrTokenInvalid", err)
	}
}
