// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for secret hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the
// domain pure. It verifies both user passwords and client secrets.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext secret. The salt is
	// random per call, so two hashes of the same input differ.
	Hash(plaintext string) (string, error)

	// Check compares a plaintext secret with a stored hash. A malformed
	// stored hash is reported as a mismatch, never as a panic or error.
	Check(plaintext, storedHash string) bool
}
