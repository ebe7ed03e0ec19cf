package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cretpass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Check("s3cretpass", hash))
	assert.False(t, hasher.Check("wrongpassword", hash))
}

func TestBcryptHasherSaltsEveryHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("s3cretpass")
	require.NoError(t, err)
	second, err := hasher.Hash("s3cretpass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt draws a fresh salt per call")
	assert.True(t, hasher.Check("s3cretpass", first))
	assert.True(t, hasher.Check("s3cretpass", second))
}

func TestBcryptHasherMalformedStoredHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	// An unusable placeholder is never a valid bcrypt hash, so every
	// comparison against it fails.
	assert.False(t, hasher.Check("anything", "{federated}"))
	assert.False(t, hasher.Check("", ""))
}
