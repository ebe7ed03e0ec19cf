package service

import (
	"encoding/json"
	"time"

	"libris/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Token type markers embedded in the "typ" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the payload of issued tokens. Beyond the registered claims
// (sub=login, iss, aud, iat, exp) an access token carries the principal's
// authority list and email, always computed from the live identity at
// issuance time.
type Claims struct {
	Authorities []string `json:"authorities,omitempty"`
	Email       string   `json:"email,omitempty"`
	TokenType   string   `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed, self-contained tokens. It owns the
// process-wide signing key material: generated or loaded once at startup,
// immutable afterwards, with only the public half exposed through KeySet.
type TokenService interface {
	// IssueAccessToken mints a signed access token for the principal.
	IssueAccessToken(principal *entity.Principal) (string, error)

	// IssueRefreshToken mints a signed refresh token for the principal.
	// Refresh tokens carry the subject only; claims are recomputed from the
	// current identity state when the token is redeemed.
	IssueRefreshToken(principal *entity.Principal) (string, error)

	// Parse verifies signature, expiry and issuer of a token string and
	// returns its claims. Verification failures of any kind surface to
	// callers as "no valid credential present".
	Parse(tokenString string) (*Claims, error)

	// KeySet returns the public half of the signing key material as a JSON
	// Web Key Set, keyed by key id, for independent verifiers.
	KeySet() (json.RawMessage, error)

	// AccessTokenTTL returns the configured access-token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh-token lifetime.
	RefreshTokenTTL() time.Duration
}
