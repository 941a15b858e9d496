package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signToken mints a token the way the auth service does, so ValidateToken
// can be checked against a real upstream-issued credential.
func signToken(t *testing.T, userId string, expiresIn time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestValidateToken(t *testing.T) {
	claims, err := ValidateToken(signToken(t, "user-123", time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("user id = %q, want user-123", claims.UserID)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	if _, err := ValidateToken(signToken(t, "user-123", -time.Hour)); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}
