package impl

import (
	"context"
	"testing"
	"time"

	"libris/config"
	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientRegistry(clientRepo *fakeClientRepo) usecase.ClientRegistry {
	return NewClientRegistry(ClientRegistryParams{
		ClientRepo: clientRepo,
		Config: &config.Config{Token: &config.TokenConfig{
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 2 * time.Hour,
		}},
		Logger: testLogger(),
	})
}

func TestClientRegistryResolve(t *testing.T) {
	clientRepo := newFakeClientRepo()
	require.NoError(t, clientRepo.Create(context.Background(), &entity.Client{
		ClientID:    "catalog-web",
		SecretHash:  "$2a$10$hash",
		RedirectURI: "https://app.example.com/callback",
		Scope:       "catalog:read",
	}))
	registry := newTestClientRegistry(clientRepo)

	client, err := registry.Resolve(context.Background(), "catalog-web")
	require.NoError(t, err)

	assert.Equal(t, "catalog-web", client.ClientID)
	assert.Equal(t, "$2a$10$hash", client.SecretHash)
	assert.Equal(t, 30*time.Minute, client.AccessTokenTTL)
	assert.Equal(t, 2*time.Hour, client.RefreshTokenTTL)
	for _, grant := range []entity.GrantType{
		entity.GrantAuthorizationCode,
		entity.GrantClientCredentials,
		entity.GrantRefreshToken,
	} {
		assert.True(t, client.AllowsGrant(grant), "grant %s should be allowed", grant)
	}
}

func TestClientRegistryResolveUnknown(t *testing.T) {
	registry := newTestClientRegistry(newFakeClientRepo())

	_, err := registry.Resolve(context.Background(), "no-such-client")
	assert.ErrorIs(t, err, repository.ErrClientNotFound)
}

func TestClientRegistryFailsClosed(t *testing.T) {
	registry := newTestClientRegistry(newFakeClientRepo())

	// Neither lookup-by-internal-id nor save is supported; both must fail
	// loudly instead of pretending to work.
	_, err := registry.FindByID(context.Background(), "some-id")
	assert.ErrorIs(t, err, repository.ErrClientNotFound)

	err = registry.Save(context.Background(), &usecase.RegisteredClient{ClientID: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrNotImplemented)
}
