package google

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

const (
	testClientID = "client-id-123.apps.googleusercontent.com"
	testKeyID    = "test-key-1"
)

// certTransport answers every request with a fixed JWK set, standing in for
// Google's certificate endpoint.
type certTransport struct {
	jwks []byte
}

func (t *certTransport) RoundTrip(*http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Type", "application/json")
	rec.Header().Set("Cache-Control", "public, max-age=3600")
	rec.WriteHeader(http.StatusOK)
	_, _ = rec.Write(t.jwks)

	return rec.Result(), nil
}

// newVerifierFixture builds a verifier whose validator trusts a local
// signing key instead of Google's real certificates.
func newVerifierFixture(t *testing.T) (*verifier, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks, err := json.Marshal(map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"alg": "RS256",
			"use": "sig",
			"kid": testKeyID,
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	})
	require.NoError(t, err)

	validator, err := idtoken.NewValidator(context.Background(),
		option.WithHTTPClient(&http.Client{Transport: &certTransport{jwks: jwks}}))
	require.NoError(t, err)

	v := &verifier{
		clientID: testClientID,
		validate: validator.Validate,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return v, key
}

func signAssertion(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID

	signed, err := token.SignedString(key)
	require.NoError(t, err)

	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"sub":            "google-sub-1",
		"aud":            testClientID,
		"exp":            time.Now().Add(time.Hour).Unix(),
		"iat":            time.Now().Unix(),
		"email":          "maria@gmail.com",
		"email_verified": true,
		"name":           "Maria",
	}
}

func TestVerifyAssertion(t *testing.T) {
	v, key := newVerifierFixture(t)

	identity, err := v.VerifyAssertion(context.Background(), signAssertion(t, key, validClaims()))
	require.NoError(t, err)

	assert.Equal(t, "google-sub-1", identity.Subject)
	assert.Equal(t, "maria@gmail.com", identity.Email)
	assert.Equal(t, "Maria", identity.Name)
	assert.True(t, identity.EmailVerified)
}

func TestVerifyAssertionRejectsForgedSignature(t *testing.T) {
	v, _ := newVerifierFixture(t)

	// Well-formed claims signed by a key the validator has never seen.
	foreignKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = v.VerifyAssertion(context.Background(), signAssertion(t, foreignKey, validClaims()))
	assert.Error(t, err, "an assertion signed by an unknown key must be rejected")

	// A hand-built token with no real signature at all.
	claims := validClaims()
	claims["email"] = "victim@example.com"
	payloadJSON, err := json.Marshal(map[string]any(claims))
	require.NoError(t, err)

	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT","kid":"`+testKeyID+`"}`)) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON) +
		"." + base64.RawURLEncoding.EncodeToString([]byte("signature"))

	_, err = v.VerifyAssertion(context.Background(), forged)
	assert.Error(t, err, "an unsigned assertion must never mint an identity")
}

func TestVerifyAssertionRejections(t *testing.T) {
	v, key := newVerifierFixture(t)

	tests := []struct {
		name   string
		mutate func(claims jwt.MapClaims)
	}{
		{
			name:   "wrong issuer",
			mutate: func(claims jwt.MapClaims) { claims["iss"] = "https://evil.example.com" },
		},
		{
			name:   "wrong audience",
			mutate: func(claims jwt.MapClaims) { claims["aud"] = "another-client" },
		},
		{
			name:   "expired",
			mutate: func(claims jwt.MapClaims) { claims["exp"] = time.Now().Add(-time.Hour).Unix() },
		},
		{
			name:   "email not verified",
			mutate: func(claims jwt.MapClaims) { claims["email_verified"] = false },
		},
		{
			name:   "missing email",
			mutate: func(claims jwt.MapClaims) { delete(claims, "email") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(claims)

			_, err := v.VerifyAssertion(context.Background(), signAssertion(t, key, claims))
			assert.Error(t, err)
		})
	}
}

func TestVerifyAssertionMalformedToken(t *testing.T) {
	v, _ := newVerifierFixture(t)

	for _, raw := range []string{"", "only-one-part", "a.b", "a.!!!.c"} {
		_, err := v.VerifyAssertion(context.Background(), raw)
		assert.Error(t, err, "raw assertion %q should be rejected", raw)
	}
}
