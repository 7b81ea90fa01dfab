package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/config"
)

const testSecret = "test-secret-not-for-production"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(config.AuthConfig{JWTSecret: testSecret, TokenExpiry: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager(config.AuthConfig{}); err == nil {
		t.Error("NewJWTManager() with empty secret = nil error, want error")
	}
}

func TestNewJWTManagerDefaultsExpiry(t *testing.T) {
	m, err := NewJWTManager(config.AuthConfig{JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	if m.expiry != 24*time.Hour {
		t.Errorf("default expiry = %v, want 24h", m.expiry)
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateToken(42, "moviefan", "fan@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "moviefan" {
		t.Errorf("Username = %q, want moviefan", claims.Username)
	}
	if claims.Email != "fan@example.com" {
		t.Errorf("Email = %q, want fan@example.com", claims.Email)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Error("token expiry is not in the future")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	expired := &JWTManager{secret: []byte(testSecret), expiry: -time.Hour}

	token, err := expired.GenerateToken(1, "moviefan", "fan@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	m := newTestManager(t)
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other := &JWTManager{secret: []byte("a-different-secret"), expiry: time.Hour}

	token, err := other.GenerateToken(1, "moviefan", "fan@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateToken(1, "moviefan", "fan@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Flip a character inside the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.ValidateToken(tampered); err == nil {
		t.Error("ValidateToken() accepted a tampered token")
	}
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	m := newTestManager(t)
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted an alg=none token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := newTestManager(t)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) = nil error, want error", token)
		}
	}
}
