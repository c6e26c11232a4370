package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPin hashes an admin pin with bcrypt, for use as ADMIN_PIN_HASH.
func HashPin(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), bcryptCost)
	return string(bytes), err
}

// CheckPin compares a plaintext pin against a bcrypt hash.
func CheckPin(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
