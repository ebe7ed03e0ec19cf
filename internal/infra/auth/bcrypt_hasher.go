// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"libris/config"
	"libris/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The work factor comes
// from configuration (reference policy: cost 10).
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return &bcryptHasher{cost: cfg.Auth.Cost()}
}

// NewBcryptHasherWithCost builds a hasher with an explicit work factor.
// Useful in tests where the default cost is needlessly slow.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext secret using bcrypt.
// bcrypt draws a fresh random salt per call, so repeated hashes of the same
// input differ.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)

	return string(bytes), err
}

// Check compares a plaintext secret with a bcrypt hash. A malformed stored
// hash simply fails the comparison.
func (h *bcryptHasher) Check(plaintext, storedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))

	return err == nil
}
