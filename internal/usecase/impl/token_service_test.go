package impl

import (
	"context"
	"testing"

	"libris/config"
	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/service"
	"libris/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenGrantFixture struct {
	svc          usecase.TokenUsecase
	identityRepo *fakeIdentityRepo
	clientRepo   *fakeClientRepo
	tokenSvc     service.TokenService
}

func newTokenGrantFixture(t *testing.T) *tokenGrantFixture {
	t.Helper()

	identityRepo := newFakeIdentityRepo()
	clientRepo := newFakeClientRepo()
	hasher := testHasher()
	tokenSvc := testTokenService(t)

	registry := NewClientRegistry(ClientRegistryParams{
		ClientRepo: clientRepo,
		Config:     &config.Config{Token: &config.TokenConfig{}},
		Logger:     testLogger(),
	})

	svc := NewTokenGrantService(TokenGrantServiceParams{
		Registry:     registry,
		ClientRepo:   clientRepo,
		IdentityRepo: identityRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       testLogger(),
	})

	return &tokenGrantFixture{
		svc:          svc,
		identityRepo: identityRepo,
		clientRepo:   clientRepo,
		tokenSvc:     tokenSvc,
	}
}

func (f *tokenGrantFixture) registerClient(t *testing.T) *entity.Client {
	t.Helper()

	client, err := f.svc.RegisterClient(context.Background(), &usecase.RegisterClientInput{
		ClientID:    "catalog-web",
		Secret:      "web-secret-1",
		RedirectURI: "https://app.example.com/callback",
		Scope:       "catalog:read catalog:write",
	})
	require.NoError(t, err)

	return client
}

func (f *tokenGrantFixture) seedIdentity(t *testing.T, roles ...entity.Role) *entity.Identity {
	t.Helper()

	identity, err := f.identityRepo.Upsert(context.Background(), &entity.Identity{
		Login:        "maria",
		PasswordHash: "irrelevant",
		Email:        "maria@example.com",
		Roles:        roles,
	})
	require.NoError(t, err)

	return identity
}

func TestClientCredentialsGrant(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)

	output, err := f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantClientCredentials),
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", output.TokenType)
	assert.Empty(t, output.RefreshToken, "client credentials never yields a refresh token")

	claims, err := f.tokenSvc.Parse(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "catalog-web", claims.Subject)
	assert.ElementsMatch(t, []string{"catalog:read", "catalog:write"}, claims.Authorities)
}

func TestTokenUnknownClientAndWrongSecretFailAlike(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)

	_, unknownErr := f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantClientCredentials),
		ClientID:     "no-such-client",
		ClientSecret: "whatever",
	})
	_, wrongErr := f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantClientCredentials),
		ClientID:     "catalog-web",
		ClientSecret: "wrong-secret",
	})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidClient)
	assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidClient)
}

func TestAuthorizationCodeFlow(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)
	identity := f.seedIdentity(t, entity.RoleGerente)

	code, err := f.svc.Authorize(context.Background(), &usecase.AuthorizeInput{
		Principal:   entity.NewPrincipal(identity),
		ClientID:    "catalog-web",
		RedirectURI: "https://app.example.com/callback",
	})
	require.NoError(t, err)
	require.NotEmpty(t, code)

	output, err := f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantAuthorizationCode),
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		Code:         code,
		RedirectURI:  "https://app.example.com/callback",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.RefreshToken)
	assert.Equal(t, int64(5400), output.RefreshExpiresIn)

	claims, err := f.tokenSvc.Parse(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Subject)
	assert.Contains(t, claims.Authorities, "GERENTE")

	// A code redeems at most once.
	_, err = f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantAuthorizationCode),
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		Code:         code,
		RedirectURI:  "https://app.example.com/callback",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidGrant)
}

func TestAuthorizationCodeRedirectMismatch(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)
	identity := f.seedIdentity(t, entity.RoleOperador)

	code, err := f.svc.Authorize(context.Background(), &usecase.AuthorizeInput{
		Principal:   entity.NewPrincipal(identity),
		ClientID:    "catalog-web",
		RedirectURI: "https://app.example.com/callback",
	})
	require.NoError(t, err)

	_, err = f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantAuthorizationCode),
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		Code:         code,
		RedirectURI:  "https://evil.example.com/callback",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidGrant)
}

func TestAuthorizeRejectsUnregisteredRedirect(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)
	identity := f.seedIdentity(t, entity.RoleOperador)

	_, err := f.svc.Authorize(context.Background(), &usecase.AuthorizeInput{
		Principal:   entity.NewPrincipal(identity),
		ClientID:    "catalog-web",
		RedirectURI: "https://evil.example.com/callback",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidGrant)
}

func TestRefreshGrantRecomputesAuthorities(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)
	identity := f.seedIdentity(t, entity.RoleGerente)

	refreshToken, err := f.tokenSvc.IssueRefreshToken(entity.NewPrincipal(identity))
	require.NoError(t, err)

	// Revoke the role after the refresh token was minted.
	identity.Roles = entity.Roles{entity.RoleOperador}
	_, err = f.identityRepo.Upsert(context.Background(), identity)
	require.NoError(t, err)

	output, err := f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantRefreshToken),
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		RefreshToken: refreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, refreshToken, output.RefreshToken, "the refresh token itself is returned unchanged")
	assert.Greater(t, output.RefreshExpiresIn, int64(0))
	assert.LessOrEqual(t, output.RefreshExpiresIn, int64(5400), "remaining lifetime never exceeds the configured TTL")

	claims, err := f.tokenSvc.Parse(output.AccessToken)
	require.NoError(t, err)
	assert.NotContains(t, claims.Authorities, "GERENTE", "refresh must not resurrect revoked authorities")
	assert.Contains(t, claims.Authorities, "OPERADOR")
}

func TestRefreshGrantRejectsAccessToken(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)
	identity := f.seedIdentity(t, entity.RoleOperador)

	accessToken, err := f.tokenSvc.IssueAccessToken(entity.NewPrincipal(identity))
	require.NoError(t, err)

	_, err = f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantRefreshToken),
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		RefreshToken: accessToken,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidGrant)
}

func TestRefreshGrantDeletedSubject(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)
	identity := f.seedIdentity(t, entity.RoleOperador)

	refreshToken, err := f.tokenSvc.IssueRefreshToken(entity.NewPrincipal(identity))
	require.NoError(t, err)

	delete(f.identityRepo.identities, "maria")

	_, err = f.svc.Token(context.Background(), &usecase.TokenRequestInput{
		GrantType:    string(entity.GrantRefreshToken),
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		RefreshToken: refreshToken,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidGrant)
}

func TestIntrospect(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)
	identity := f.seedIdentity(t, entity.RoleGerente)

	accessToken, err := f.tokenSvc.IssueAccessToken(entity.NewPrincipal(identity))
	require.NoError(t, err)

	active, err := f.svc.Introspect(context.Background(), &usecase.IntrospectInput{
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		Token:        accessToken,
	})
	require.NoError(t, err)
	assert.True(t, active.Active)
	assert.Equal(t, "maria", active.Subject)
	assert.Contains(t, active.Authorities, "GERENTE")
	assert.Positive(t, active.ExpiresAt)

	inactive, err := f.svc.Introspect(context.Background(), &usecase.IntrospectInput{
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		Token:        "not-a-token",
	})
	require.NoError(t, err, "an unverifiable token is reported inactive, not an error")
	assert.False(t, inactive.Active)
}

func TestRevokeRequiresClientAuth(t *testing.T) {
	f := newTokenGrantFixture(t)
	f.registerClient(t)

	err := f.svc.Revoke(context.Background(), &usecase.IntrospectInput{
		ClientID:     "catalog-web",
		ClientSecret: "wrong-secret",
		Token:        "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidClient)

	err = f.svc.Revoke(context.Background(), &usecase.IntrospectInput{
		ClientID:     "catalog-web",
		ClientSecret: "web-secret-1",
		Token:        "whatever",
	})
	assert.NoError(t, err)
}
