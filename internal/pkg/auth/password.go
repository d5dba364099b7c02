package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost of the shared seed password hash
const BcryptCost = 10

// HashPassword hashes a plaintext password with BcryptCost
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches hashedPassword
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidateHash returns an error unless hash is a well-formed bcrypt hash
func ValidateHash(hash string) error {
	_, err := bcrypt.Cost([]byte(hash))
	return err
}
