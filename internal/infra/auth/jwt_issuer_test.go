package auth

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"libris/config"
	"libris/internal/domain/entity"
	"libris/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) service.TokenService {
	t.Helper()

	svc, err := NewTokenService(&config.Config{
		Token: &config.TokenConfig{
			Issuer:   "libris-test",
			Audience: "libris-api",
		},
	})
	require.NoError(t, err)

	return svc
}

func testPrincipal() *entity.Principal {
	return entity.NewPrincipal(&entity.Identity{
		Login: "maria",
		Email: "maria@example.com",
		Roles: entity.Roles{entity.RoleGerente, entity.RoleOperador},
	})
}

func TestIssuerRequiresConfiguration(t *testing.T) {
	_, err := NewTokenService(&config.Config{})
	assert.Error(t, err)
}

func TestAccessTokenClaims(t *testing.T) {
	svc := newTestIssuer(t)

	tokenString, err := svc.IssueAccessToken(testPrincipal())
	require.NoError(t, err)

	claims, err := svc.Parse(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "maria", claims.Subject)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.ElementsMatch(t, []string{"GERENTE", "OPERADOR"}, claims.Authorities)
	assert.Equal(t, service.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "libris-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "every token carries a unique jti")

	require.NotNil(t, claims.ExpiresAt)
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 60*time.Minute, lifetime, "default access lifetime is 60 minutes")
}

func TestRefreshTokenCarriesSubjectOnly(t *testing.T) {
	svc := newTestIssuer(t)

	tokenString, err := svc.IssueRefreshToken(testPrincipal())
	require.NoError(t, err)

	claims, err := svc.Parse(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "maria", claims.Subject)
	assert.Equal(t, service.TokenTypeRefresh, claims.TokenType)
	assert.Empty(t, claims.Authorities, "refresh tokens never embed authorities")
	assert.Empty(t, claims.Email)

	require.NotNil(t, claims.ExpiresAt)
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 90*time.Minute, lifetime, "default refresh lifetime is 90 minutes")
}

func TestTokenHeaderCarriesKeyID(t *testing.T) {
	svc := newTestIssuer(t)

	tokenString, err := svc.IssueAccessToken(testPrincipal())
	require.NoError(t, err)

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, &service.Claims{})
	require.NoError(t, err)

	kid, ok := token.Header["kid"].(string)
	require.True(t, ok, "kid header must be present")
	assert.NotEmpty(t, kid)

	keySet, err := svc.KeySet()
	require.NoError(t, err)

	var set struct {
		Keys []struct {
			Kty string `json:"kty"`
			Use string `json:"use"`
			Alg string `json:"alg"`
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(keySet, &set))
	require.Len(t, set.Keys, 1)

	key := set.Keys[0]
	assert.Equal(t, kid, key.Kid, "the published key id matches the token header")
	assert.Equal(t, "RSA", key.Kty)
	assert.Equal(t, "sig", key.Use)
	assert.Equal(t, "RS256", key.Alg)
	assert.NotEmpty(t, key.N)
	assert.NotEmpty(t, key.E)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	svc := newTestIssuer(t)

	tokenString, err := svc.IssueAccessToken(testPrincipal())
	require.NoError(t, err)

	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = svc.Parse(tampered)
	assert.Error(t, err)
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	svc := newTestIssuer(t)
	other := newTestIssuer(t)

	// Same configuration, different keypair: the signature cannot verify.
	tokenString, err := other.IssueAccessToken(testPrincipal())
	require.NoError(t, err)

	_, err = svc.Parse(tokenString)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := newTestIssuer(t)

	_, err := svc.Parse("not-a-token")
	assert.Error(t, err)
}
