package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("HashPassword() returned the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword(hash, "") {
		t.Error("CheckPassword() accepted an empty password")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
	if CheckPassword("", "anything") {
		t.Error("CheckPassword() accepted an empty hash")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt is not applied")
	}
}
