package auth

import (
	"errors"
	"testing"
)

func TestHashPassword_Check(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("expected matching password, got %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("!", "anything")
	if err == nil {
		t.Fatal("expected error for unusable hash")
	}
	if errors.Is(err, ErrPasswordMismatch) {
		t.Error("malformed hash should not be reported as a mismatch")
	}
}
