// Package password implements the credential hashing service on top of bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a salted hash from the plaintext password.
// The returned value is opaque; callers must not interpret its format.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash.
// A malformed or legacy stored hash is treated as a mismatch, never an error.
func Verify(stored, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}

// DummyHash is a valid bcrypt hash of a random string. Login performs a
// comparison against it when the user does not exist, so that the response
// time does not reveal whether the identifier was known.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
