package config

import (
	"reflect"
	"testing"

	"github.com/gofiber/fiber/v3/middleware/cors"
)

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "s3cret",
		DBName:   "movies",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=app password=s3cret dbname=movies sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	cfg.SSLRootCert = "/etc/ssl/root.crt"
	want += " sslrootcert=/etc/ssl/root.crt"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() with root cert = %q, want %q", got, want)
	}
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"http://localhost:5500", []string{"http://localhost:5500"}},
		{"http://a.example, http://b.example", []string{"http://a.example", "http://b.example"}},
		{"http://a.example,,  ,http://b.example", []string{"http://a.example", "http://b.example"}},
		{"*", []string{"*"}},
		{"http://a.example,*", []string{"*"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		if got := splitOrigins(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitOrigins(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCORSCredentialsPerOrigins(t *testing.T) {
	tests := []struct {
		name         string
		origins      []string
		wantWildcard bool
	}{
		{"explicit origins", []string{"http://localhost:5500", "http://127.0.0.1:5500"}, false},
		{"wildcard", []string{"*"}, true},
		{"empty", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := CORSConfig{AllowOrigins: tt.origins}
			if cfg.Wildcard() != tt.wantWildcard {
				t.Errorf("Wildcard() = %v, want %v", cfg.Wildcard(), tt.wantWildcard)
			}
			if cfg.AllowCredentials() != !tt.wantWildcard {
				t.Errorf("AllowCredentials() = %v, want %v", cfg.AllowCredentials(), !tt.wantWildcard)
			}
		})
	}
}

// The CORS middleware panics when a wildcard origin is combined with
// credentials; the derived settings must stay constructible for any
// configured origin list, wildcard included.
func TestCORSWildcardSettingsConstructible(t *testing.T) {
	for _, raw := range []string{"*", "http://a.example,*", "http://a.example,http://b.example"} {
		cfg := CORSConfig{AllowOrigins: splitOrigins(raw)}

		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("cors.New panicked for CORS_ALLOW_ORIGINS=%q: %v", raw, r)
				}
			}()
			cors.New(cors.Config{
				AllowOrigins:     cfg.AllowOrigins,
				AllowCredentials: cfg.AllowCredentials(),
			})
		}()
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("Load() with empty JWT_SECRET = nil error, want error")
	}

	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q, want test-secret", cfg.Auth.JWTSecret)
	}
	if cfg.DB.Port == 0 || cfg.Port == "" {
		t.Error("Load() left defaults unset")
	}
	if cfg.Upload.AvatarDir != cfg.Upload.Dir+"/avatars" {
		t.Errorf("AvatarDir = %q, want nested under %q", cfg.Upload.AvatarDir, cfg.Upload.Dir)
	}
}
