package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for new password hashes. Existing hashes keep
// the cost they were created with, so raising this only affects new signups.
const bcryptCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash for storage. The plaintext is never
// persisted anywhere else.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether plaintext matches the stored bcrypt hash.
func CheckPasswordHash(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
