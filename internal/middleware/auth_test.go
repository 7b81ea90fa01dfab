package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/auth"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/config"
)

func newProtectedApp(t *testing.T, m *auth.JWTManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", RequireAuth(m), func(c fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return c.Status(fiber.StatusInternalServerError).SendString("claims missing")
		}
		return c.SendString(claims.Username)
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	m, err := auth.NewJWTManager(config.AuthConfig{JWTSecret: "test-secret", TokenExpiry: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	validToken, err := m.GenerateToken(7, "moviefan", "fan@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	otherManager, err := auth.NewJWTManager(config.AuthConfig{JWTSecret: "another-secret", TokenExpiry: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	foreignToken, err := otherManager.GenerateToken(7, "moviefan", "fan@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	app := newProtectedApp(t, m)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"bare token", validToken, http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + foreignToken, http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + validToken, http.StatusOK, "moviefan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", body, tt.wantBody)
				}
			}
		})
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	m, err := auth.NewJWTManager(config.AuthConfig{JWTSecret: "test-secret", TokenExpiry: time.Millisecond})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	token, err := m.GenerateToken(7, "moviefan", "fan@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	app := newProtectedApp(t, m)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "invalid or expired") {
		t.Errorf("body = %q, want expired-token message", body)
	}
}
