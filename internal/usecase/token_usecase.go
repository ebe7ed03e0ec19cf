package usecase

import (
	"context"
	"time"

	"libris/internal/domain/entity"
)

// RegisteredClient is the descriptor shape token issuance and validation
// consume: the stored client record joined with the shared token policy.
type RegisteredClient struct {
	ID              string
	ClientID        string
	SecretHash      string
	RedirectURI     string
	Scope           string
	GrantTypes      []entity.GrantType
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AllowsGrant reports whether the client may use the given grant type.
func (c *RegisteredClient) AllowsGrant(grant entity.GrantType) bool {
	for _, g := range c.GrantTypes {
		if g == grant {
			return true
		}
	}

	return false
}

// ClientRegistry bridges stored client records into RegisteredClient
// descriptors. Secrets are compared through the credential verifier only,
// never as plaintext.
type ClientRegistry interface {
	// Resolve returns the descriptor for a public client id.
	Resolve(ctx context.Context, clientID string) (*RegisteredClient, error)

	// FindByID looks a client up by internal id. Client self-service is not
	// supported yet, so this fails closed with not-found.
	FindByID(ctx context.Context, id string) (*RegisteredClient, error)

	// Save persists a descriptor. Client self-service is not supported yet,
	// so this fails closed rather than silently succeeding.
	Save(ctx context.Context, client *RegisteredClient) error
}

// --- Token endpoint DTOs ---

// TokenRequestInput is the form payload of the token endpoint.
type TokenRequestInput struct {
	GrantType    string
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
	RefreshToken string
}

// TokenOutput is the token endpoint response body.
type TokenOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	// RefreshExpiresIn reports the remaining refresh-token lifetime in
	// seconds when a refresh token is part of the response.
	RefreshExpiresIn int64  `json:"refresh_expires_in,omitempty"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	Scope            string `json:"scope,omitempty"`
}

// AuthorizeInput asks for a one-time authorization code binding the
// authenticated principal to a client.
type AuthorizeInput struct {
	Principal   *entity.Principal
	ClientID    string
	RedirectURI string
}

// IntrospectInput carries the client credentials plus the token under inspection.
type IntrospectInput struct {
	ClientID     string
	ClientSecret string
	Token        string
}

// IntrospectOutput reports a token's state statelessly (RFC 7662 shape).
type IntrospectOutput struct {
	Active      bool     `json:"active"`
	Subject     string   `json:"sub,omitempty"`
	Email       string   `json:"email,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	TokenType   string   `json:"token_type,omitempty"`
	ExpiresAt   int64    `json:"exp,omitempty"`
}

// RegisterClientInput defines the data required to register an OAuth2 client.
type RegisterClientInput struct {
	ClientID    string `json:"clientId" validate:"required"`
	Secret      string `json:"clientSecret" validate:"required,min=8"`
	RedirectURI string `json:"redirectURI" validate:"required,uri"`
	Scope       string `json:"scope" validate:"required"`
}

// TokenUsecase implements the OAuth2 protocol surface on top of the token
// issuer and the client registry.
type TokenUsecase interface {
	// Token handles the token endpoint grants: authorization_code,
	// client_credentials and refresh_token.
	Token(ctx context.Context, input *TokenRequestInput) (*TokenOutput, error)

	// Authorize issues a one-time authorization code for the principal.
	Authorize(ctx context.Context, input *AuthorizeInput) (string, error)

	// Introspect reports token state after authenticating the client.
	Introspect(ctx context.Context, input *IntrospectInput) (*IntrospectOutput, error)

	// Revoke accepts a revocation request. Tokens are self-contained, so
	// revocation is accepted but has no server-side effect in the base design.
	Revoke(ctx context.Context, input *IntrospectInput) error

	// RegisterClient persists a new OAuth2 client with a hashed secret.
	RegisterClient(ctx context.Context, input *RegisterClientInput) (*entity.Client, error)
}
