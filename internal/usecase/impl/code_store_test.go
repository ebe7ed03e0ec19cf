package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeStoreIssueAndRedeem(t *testing.T) {
	store := newCodeStore()

	code := store.Issue("maria", "catalog-web", "https://app.example.com/callback")
	require.NotEmpty(t, code)

	entry, ok := store.Redeem(code)
	require.True(t, ok)
	assert.Equal(t, "maria", entry.subject)
	assert.Equal(t, "catalog-web", entry.clientID)
	assert.Equal(t, "https://app.example.com/callback", entry.redirectURI)

	_, ok = store.Redeem(code)
	assert.False(t, ok, "a code redeems at most once")
}

func TestCodeStoreUnknownCode(t *testing.T) {
	store := newCodeStore()

	_, ok := store.Redeem("never-issued")
	assert.False(t, ok)
}

func TestCodeStoreExpiry(t *testing.T) {
	store := newCodeStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	code := store.Issue("maria", "catalog-web", "https://app.example.com/callback")

	store.now = func() time.Time { return now.Add(authorizationCodeTTL + time.Second) }

	_, ok := store.Redeem(code)
	assert.False(t, ok, "expired codes must not redeem")
}

func TestCodeStorePurgesExpiredOnIssue(t *testing.T) {
	store := newCodeStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	stale := store.Issue("maria", "catalog-web", "https://app.example.com/callback")

	store.now = func() time.Time { return now.Add(authorizationCodeTTL + time.Second) }
	store.Issue("joao", "catalog-web", "https://app.example.com/callback")

	store.mu.Lock()
	_, stillThere := store.codes[stale]
	store.mu.Unlock()
	assert.False(t, stillThere, "issuing should lazily purge expired entries")
}
