package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the rest of the system was provisioned
// for; raising it invalidates no stored hashes (cost is embedded per hash).
const bcryptCost = 10

// PasswordHasher wraps bcrypt hashing and verification. It applies no input
// validation; length bounds are enforced by the HTTP layer.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash produces a salted one-way hash of the plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed or
// empty hash verifies as false, never as an error.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
