package entity

import (
	"time"

	"github.com/google/uuid"
)

// GrantType represents an OAuth2 authorization grant a client may use.
type GrantType string

const (
	// GrantAuthorizationCode exchanges a one-time authorization code for tokens.
	GrantAuthorizationCode GrantType = "authorization_code"
	// GrantClientCredentials authenticates the client itself, with no end user.
	GrantClientCredentials GrantType = "client_credentials"
	// GrantRefreshToken exchanges a refresh token for a new access token.
	GrantRefreshToken GrantType = "refresh_token"
)

// String returns the string representation of the GrantType.
func (g GrantType) String() string {
	return string(g)
}

// Client represents a registered caller of the token endpoint, distinct from
// an end-user Identity. The secret is only ever held as a one-way hash.
type Client struct {
	ID          uuid.UUID // Internal unique identifier of the client record.
	ClientID    string    // Public client identifier, unique within the store.
	SecretHash  string    // Salted one-way hash of the client secret. Never the plaintext.
	RedirectURI string    // Redirect URI allowed for the authorization-code grant.
	Scope       string    // Space-separated scope granted to this client.
	CreatedAt   time.Time // Timestamp of when this client was registered.
	UpdatedAt   time.Time // Timestamp of the last modification to this client.
}
