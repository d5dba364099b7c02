package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("expected password to match its hash")
	}
	if CheckPassword(hash, "other") {
		t.Error("expected a different password not to match")
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil || cost != BcryptCost {
		t.Errorf("expected cost %d, got %d (%v)", BcryptCost, cost, err)
	}
}

func TestValidateHash(t *testing.T) {
	if err := ValidateHash("$2b$10$mSAYMiRM1448LuLpBqQOHOJ8H0941/3Rc1a9bSRkPmFRJC6mDVQ9i"); err != nil {
		t.Errorf("expected seed hash to be valid, got %v", err)
	}
	if err := ValidateHash("not-a-hash"); err == nil {
		t.Error("expected an error for a malformed hash")
	}
}
