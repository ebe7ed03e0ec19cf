// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"os"
	"time"

	"libris/config"
	"libris/internal/domain/entity"
	"libris/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const signingKeyBits = 2048

// jwtIssuer implements service.TokenService with RS256-signed, self-contained
// tokens. The keypair is constructed once here, injected into the fx graph,
// and read-only afterwards, so it is safe to share across concurrent requests
// without locking. Rotation is an operational concern layered on top.
type jwtIssuer struct {
	key        *rsa.PrivateKey
	keyID      string
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService is the constructor for jwtIssuer. With no configured key
// path a fresh RSA keypair is generated and lives for the process lifetime;
// otherwise the PEM-encoded key is loaded so restarts keep issued tokens
// verifiable.
func NewTokenService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Token == nil || cfg.Token.Issuer == "" {
		return nil, errors.New("token issuer must be configured")
	}

	key, err := loadOrGenerateKey(cfg.Token.PrivateKeyPath)
	if err != nil {
		return nil, err
	}

	return &jwtIssuer{
		key:        key,
		keyID:      uuid.New().String(),
		issuer:     cfg.Token.Issuer,
		audience:   cfg.Token.Audience,
		accessTTL:  cfg.Token.AccessTTL(),
		refreshTTL: cfg.Token.RefreshTTL(),
	}, nil
}

func loadOrGenerateKey(path string) (*rsa.PrivateKey, error) {
	if path == "" {
		key, err := rsa.GenerateKey(rand.Reader, signingKeyBits)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate signing keypair")
		}

		return key, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read signing key file")
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("signing key file contains no PEM block")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse signing key")
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("signing key is not an RSA private key")
	}

	return key, nil
}

// IssueAccessToken mints a signed access token carrying the principal's
// current authorities and email. Claims come from the principal handed in,
// never from a previously issued token.
func (s *jwtIssuer) IssueAccessToken(principal *entity.Principal) (string, error) {
	return s.sign(&service.Claims{
		Authorities:      principal.Authorities(),
		Email:            principal.Email(),
		TokenType:        service.TokenTypeAccess,
		RegisteredClaims: s.registeredClaims(principal.Name(), s.accessTTL),
	})
}

// IssueRefreshToken mints a signed refresh token. Only the subject is
// carried; authorities are recomputed from the live identity on redemption.
func (s *jwtIssuer) IssueRefreshToken(principal *entity.Principal) (string, error) {
	return s.sign(&service.Claims{
		TokenType:        service.TokenTypeRefresh,
		RegisteredClaims: s.registeredClaims(principal.Name(), s.refreshTTL),
	})
}

func (s *jwtIssuer) registeredClaims(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()

	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.New().String(),
	}
}

func (s *jwtIssuer) sign(claims *service.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	// The key id rides in the header so verifiers can select the matching
	// public key from the key set.
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Parse verifies signature, expiry, issuer and audience of a token string.
func (s *jwtIssuer) Parse(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		if kid, _ := token.Header["kid"].(string); kid != s.keyID {
			return nil, errors.Errorf("unknown signing key id %q", kid)
		}

		return &s.key.PublicKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience))
	if err != nil {
		return nil, errors.Wrap(err, "token verification failed")
	}

	return claims, nil
}

// jwk is the public-key entry exposed through the key-discovery endpoint.
type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

// KeySet exports the public half of the signing key material as a JSON Web
// Key Set. The private key never leaves the process.
func (s *jwtIssuer) KeySet() (json.RawMessage, error) {
	pub := &s.key.PublicKey

	set := jwkSet{Keys: []jwk{{
		Kty: "RSA",
		Use: "sig",
		Alg: "RS256",
		Kid: s.keyID,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}}}

	raw, err := json.Marshal(set)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal key set")
	}

	return raw, nil
}

// AccessTokenTTL returns the configured access-token lifetime.
func (s *jwtIssuer) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured refresh-token lifetime.
func (s *jwtIssuer) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}
