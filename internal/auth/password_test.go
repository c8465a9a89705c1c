package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123", 10)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals plaintext")
	}

	if err := CheckPassword("secret123", hash); err != nil {
		t.Errorf("CheckPassword() unexpected error: %v", err)
	}
	if err := CheckPassword("wrong", hash); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("CheckPassword() error = %v, want ErrInvalidPassword", err)
	}
}

func TestHashPassword_Limits(t *testing.T) {
	if _, err := HashPassword("short", 10); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("HashPassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	long := strings.Repeat("a", 73)
	if _, err := HashPassword(long, 10); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("HashPassword(long) error = %v, want ErrPasswordTooLong", err)
	}
}

func TestGenerateAPIToken(t *testing.T) {
	plaintext, hash, err := GenerateAPIToken()
	if err != nil {
		t.Fatalf("GenerateAPIToken() failed: %v", err)
	}
	if len(plaintext) != 64 {
		t.Errorf("token length = %d, want 64", len(plaintext))
	}
	if hash != HashToken(plaintext) {
		t.Error("hash does not match HashToken(plaintext)")
	}

	other, _, err := GenerateAPIToken()
	if err != nil {
		t.Fatalf("GenerateAPIToken() failed: %v", err)
	}
	if other == plaintext {
		t.Error("two generated tokens are identical")
	}
}
