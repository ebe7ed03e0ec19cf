package entity

// Principal is the canonical, request-scoped representation of "who is making
// this call", independent of how the caller authenticated. It wraps exactly
// one Identity and is immutable once constructed: role changes require a new
// Principal on the next resolution, never mutation in place.
type Principal struct {
	identity    *Identity
	authorities []string
}

// NewPrincipal constructs a Principal from an Identity. Authorities are
// derived deterministically from the identity's roles, one authority per
// role, verbatim.
func NewPrincipal(identity *Identity) *Principal {
	return &Principal{
		identity:    identity,
		authorities: identity.Roles.ToStrings(),
	}
}

// NewTokenPrincipal constructs a Principal from claims carried by a verified
// bearer token, for the fallback case where the subject no longer resolves
// against the identity store.
func NewTokenPrincipal(login, email string, authorities []string) *Principal {
	return &Principal{
		identity: &Identity{
			Login: login,
			Email: email,
			Roles: RolesFromStrings(authorities),
		},
		authorities: authorities,
	}
}

// Identity returns the wrapped account record.
func (p *Principal) Identity() *Identity {
	return p.identity
}

// Name returns the login of the authenticated caller.
func (p *Principal) Name() string {
	return p.identity.Login
}

// Email returns the email of the authenticated caller.
func (p *Principal) Email() string {
	return p.identity.Email
}

// Authorities returns the caller's authority names. The returned slice is a
// copy so callers cannot mutate the Principal.
func (p *Principal) Authorities() []string {
	out := make([]string, len(p.authorities))
	copy(out, p.authorities)

	return out
}

// HasAuthority reports whether the caller holds the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.authorities {
		if a == authority {
			return true
		}
	}

	return false
}

// Equal reports whether two principals represent the same identity.
// Equality is by wrapped identity id.
func (p *Principal) Equal(other *Principal) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.identity.ID == other.identity.ID
}
