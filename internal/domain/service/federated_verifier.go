package service

import "context"

// FederatedIdentity is the minimum a verified external identity assertion
// must provide: an email claim the provider has verified, plus display data.
type FederatedIdentity struct {
	Subject       string // Provider-specific stable user id (e.g. the 'sub' claim).
	Email         string // The verified email claim.
	Name          string // Display name, if the provider supplies one.
	EmailVerified bool   // Whether the provider attests the email.
}

// FederatedVerifier validates an external identity assertion (protocol and
// cryptographic checks are this collaborator's responsibility) and extracts
// the identity claims the resolvers need.
type FederatedVerifier interface {
	// VerifyAssertion validates the raw assertion and returns its identity
	// claims, or an error when the assertion cannot be trusted.
	VerifyAssertion(ctx context.Context, rawAssertion string) (*FederatedIdentity, error)
}
