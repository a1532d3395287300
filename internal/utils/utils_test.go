package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("box-office-secret", 4)
	if err != nil {
		t.Fatalf("expected hashing to succeed, got %v", err)
	}
	if hash == "box-office-secret" {
		t.Fatalf("expected hash to differ from the plaintext")
	}
	if !VerifyPassword(hash, "box-office-secret") {
		t.Fatalf("expected the original password to verify")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Fatalf("expected a wrong password to fail verification")
	}
}

func TestHashPasswordCostOutOfRange(t *testing.T) {
	t.Parallel()

	// An unusable configured cost must not surface as an error; the
	// hash falls back to the bcrypt default and still verifies.
	hash, err := HashPassword("box-office-secret", 99)
	if err != nil {
		t.Fatalf("expected fallback to the default cost, got %v", err)
	}
	if !VerifyPassword(hash, "box-office-secret") {
		t.Fatalf("expected the password to verify against the fallback hash")
	}
}

func TestNewAccessToken(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("test-secret", 42, "BOX_OFFICE", 15)
	if err != nil {
		t.Fatalf("expected token issuance to succeed, got %v", err)
	}

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("expected token to parse, got %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatalf("expected valid map claims")
	}
	if got := claims["role"]; got != "BOX_OFFICE" {
		t.Fatalf("expected role claim BOX_OFFICE, got %v", got)
	}
	if got, ok := claims["sub"].(float64); !ok || uint64(got) != 42 {
		t.Fatalf("expected subject 42, got %v", claims["sub"])
	}
}
