package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func TestRegisterRequestValidate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{
			Username: "moviefan",
			FullName: "Movie Fan",
			Email:    "fan@example.com",
			Password: "secret123",
		}
	}

	tests := []struct {
		name      string
		mutate    func(*RegisterRequest)
		wantField string
	}{
		{"valid", func(r *RegisterRequest) {}, ""},
		{"valid with age", func(r *RegisterRequest) { r.Age = intPtr(34) }, ""},
		{"username too short", func(r *RegisterRequest) { r.Username = "ab" }, "username"},
		{"username too long", func(r *RegisterRequest) { r.Username = strings.Repeat("a", 51) }, "username"},
		{"missing full name", func(r *RegisterRequest) { r.FullName = "" }, "full_name"},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"email without at sign", func(r *RegisterRequest) { r.Email = "fan.example.com" }, "email"},
		{"email without domain", func(r *RegisterRequest) { r.Email = "fan@" }, "email"},
		{"missing password", func(r *RegisterRequest) { r.Password = "" }, "password"},
		{"negative age", func(r *RegisterRequest) { r.Age = intPtr(-1) }, "age"},
		{"age too large", func(r *RegisterRequest) { r.Age = intPtr(151) }, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if err == nil {
				t.Fatalf("Validate() = nil, want error on %q", tt.wantField)
			}
			if !IsValidation(err) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			ve = err.(*ValidationError)
			if ve.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateProfileRequest
		wantErr bool
	}{
		{"empty update", UpdateProfileRequest{}, false},
		{"valid username", UpdateProfileRequest{Username: strPtr("newname")}, false},
		{"short username", UpdateProfileRequest{Username: strPtr("ab")}, true},
		{"valid email", UpdateProfileRequest{Email: strPtr("new@example.com")}, false},
		{"bad email", UpdateProfileRequest{Email: strPtr("not-an-email")}, true},
		{"valid age", UpdateProfileRequest{Age: intPtr(40)}, false},
		{"bad age", UpdateProfileRequest{Age: intPtr(200)}, true},
		{"only demographics", UpdateProfileRequest{Gender: strPtr("female"), Location: strPtr("KL")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// The stored hash must never appear in any serialized user shape.
func TestUserSerializationOmitsPasswordHash(t *testing.T) {
	u := User{
		ID:           7,
		Username:     "moviefan",
		Email:        "fan@example.com",
		PasswordHash: "$2a$12$fakehashvalue",
		FullName:     "Movie Fan",
	}

	for name, v := range map[string]any{"user": u, "response": u.Response()} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if strings.Contains(string(data), "password") || strings.Contains(string(data), "fakehash") {
			t.Errorf("%s JSON leaks password material: %s", name, data)
		}
	}
}

func TestDemographicsRequestProfileUpdate(t *testing.T) {
	req := DemographicsRequest{
		Age:      intPtr(28),
		Gender:   strPtr("male"),
		Location: strPtr("Penang"),
	}

	upd := req.ProfileUpdate()
	if upd.Age == nil || *upd.Age != 28 {
		t.Errorf("ProfileUpdate() age = %v, want 28", upd.Age)
	}
	if upd.Gender == nil || *upd.Gender != "male" {
		t.Errorf("ProfileUpdate() gender = %v, want male", upd.Gender)
	}
	if upd.Username != nil || upd.Email != nil || upd.Password != nil {
		t.Error("ProfileUpdate() must not carry identity or credential fields")
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"fan@example.com", true},
		{"first.last@sub.example.co", true},
		{"user-name@example.io", true},
		{"moviefan", false},
		{"@example.com", false},
		{"fan@example", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
