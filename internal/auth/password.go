// Package auth provides secret hashing and session token helpers for the
// report store.
package auth

import "golang.org/x/crypto/bcrypt"

// HashSecret derives a salted one-way hash of the given secret.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret compares a stored hash against a candidate secret.
// Returns a non-nil error on mismatch.
func CheckSecret(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}
