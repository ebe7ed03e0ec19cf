// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"libris/internal/domain/entity"
	"libris/internal/domain/service"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new identity.
type SignupInput struct {
	Login    string `json:"login" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required"`
}

// LoginInput defines the data required for password login.
type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// FederatedLoginInput carries the raw external identity assertion
// (e.g. a Google ID token) presented at the social-login endpoint.
type FederatedLoginInput struct {
	Assertion string `json:"assertion" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the issued token pair after a successful resolution.
type LoginOutput struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64
	RefreshExpiresIn int64
	Identity         *entity.Identity
}

// AuthnUsecase unifies the three authentication mechanisms behind one
// contract: each operation converts a mechanism-specific credential into a
// canonical Principal (and, for the login flows, an issued token pair).
type AuthnUsecase interface {
	// Signup registers a new identity with a hashed password.
	Signup(ctx context.Context, input *SignupInput) (*entity.Identity, error)

	// Login resolves login+password into a Principal and issues tokens.
	// Unknown login and wrong password fail identically.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// FederatedLogin resolves a verified external assertion, auto-provisioning
	// the identity on first sight, and issues tokens. Idempotent per email.
	FederatedLogin(ctx context.Context, input *FederatedLoginInput) (*LoginOutput, error)

	// ResolveBearer rebuilds a fresh Principal for the subject of an already
	// verified token. Authorities embedded in the token are not trusted; they
	// are re-derived from the live identity record. When the subject no
	// longer exists, the token-only principal is returned unchanged.
	ResolveBearer(ctx context.Context, claims *service.Claims) (*entity.Principal, error)
}
