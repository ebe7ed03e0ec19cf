// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "libris/internal/delivery/context"
	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/domain/service"
	"libris/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyHash is a syntactically valid bcrypt hash (cost 10) of a random
// string. When a login does not resolve, the password resolver still burns
// one comparison against it so the unknown-login path stays in the same
// latency class as the wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// federatedPlaceholderHash is the password hash assigned to identities
// auto-provisioned by federated login. It is deliberately not a valid bcrypt
// hash, so the credential verifier rejects every password attempt against it:
// federated accounts cannot authenticate through the password resolver until
// an explicit password reset replaces it.
const federatedPlaceholderHash = "{federated}"

// authnService implements the AuthnUsecase interface: one resolver per
// inbound authentication mechanism, all producing canonical principals.
type authnService struct {
	identityRepo      repository.IdentityRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	federatedVerifier service.FederatedVerifier
	logger            *slog.Logger
}

// AuthnServiceParams holds dependencies for authnService, injected by Fx.
type AuthnServiceParams struct {
	fx.In

	IdentityRepo      repository.IdentityRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	FederatedVerifier service.FederatedVerifier
	Logger            *slog.Logger
}

// NewAuthnService is the constructor for authnService.
func NewAuthnService(params AuthnServiceParams) usecase.AuthnUsecase {
	return &authnService{
		identityRepo:      params.IdentityRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		federatedVerifier: params.FederatedVerifier,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authnService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new identity. The password never reaches the store in
// plaintext; new accounts default to the lowest-privilege role.
func (srv *authnService) Signup(ctx context.Context, input *usecase.SignupInput) (*entity.Identity, error) {
	srv.log(ctx).Info("Registering identity", slog.String("login", input.Login))

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	roles := entity.RolesFromStrings(input.Roles)
	if len(roles) == 0 {
		roles = entity.Roles{entity.RoleOperador}
	}

	identity := &entity.Identity{
		Login:        input.Login,
		PasswordHash: hashed,
		Email:        input.Email,
		Roles:        roles,
	}

	saved, err := srv.identityRepo.Upsert(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityExists) {
			return nil, domainerrors.ErrDuplicateRecord.WrapMessage("login or email already registered")
		}

		return nil, errors.Wrap(err, "failed to persist identity during signup")
	}

	srv.log(ctx).Debug("Identity registered", slog.Any("identityID", saved.ID))

	return saved, nil
}

// Login implements the password resolver plus token issuance. Unknown login
// and wrong password are indistinguishable by message and latency class.
func (srv *authnService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	principal, err := srv.resolvePassword(ctx, input.Login, input.Password)
	if err != nil {
		return nil, err
	}

	return srv.issueTokenPair(ctx, principal)
}

// resolvePassword converts login+password into a canonical Principal.
// This resolver performs no writes.
func (srv *authnService) resolvePassword(ctx context.Context, login, password string) (*entity.Principal, error) {
	identity, err := srv.identityRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			// Equalize timing with the found-but-wrong-password path.
			srv.hasher.Check(password, dummyHash)
			srv.log(ctx).Warn("Password login failed", slog.String("login", login))

			return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("password resolution failed")
		}

		// Store failures stay infrastructure failures; they are never
		// disguised as bad credentials.
		return nil, errors.Wrap(err, "failed to look up identity by login")
	}

	if !srv.hasher.Check(password, identity.PasswordHash) {
		srv.log(ctx).Warn("Password login failed", slog.String("login", login))

		return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("password resolution failed")
	}

	return entity.NewPrincipal(identity), nil
}

// FederatedLogin implements the federated-login resolver plus token issuance.
func (srv *authnService) FederatedLogin(ctx context.Context, input *usecase.FederatedLoginInput) (*usecase.LoginOutput, error) {
	assertion, err := srv.federatedVerifier.VerifyAssertion(ctx, input.Assertion)
	if err != nil {
		srv.log(ctx).Warn("Federated assertion rejected", slog.Any("error", err))

		return nil, domainerrors.ErrFederatedAssertionInvalid.WrapMessage("assertion verification failed")
	}

	principal, err := srv.resolveFederated(ctx, assertion)
	if err != nil {
		return nil, err
	}

	return srv.issueTokenPair(ctx, principal)
}

// resolveFederated maps a verified assertion onto an Identity, provisioning
// one on first sight. The operation is idempotent per email: a lost insert
// race degrades into a re-read, never a duplicate.
func (srv *authnService) resolveFederated(ctx context.Context, assertion *service.FederatedIdentity) (*entity.Principal, error) {
	identity, err := srv.identityRepo.FindByEmail(ctx, assertion.Email)
	if err == nil {
		return entity.NewPrincipal(identity), nil
	}
	if !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, errors.Wrap(err, "failed to look up identity by email")
	}

	srv.log(ctx).Info("Provisioning identity for federated login", slog.String("email", assertion.Email))

	provisioned := &entity.Identity{
		Login:        loginFromEmail(assertion.Email),
		PasswordHash: federatedPlaceholderHash,
		Email:        assertion.Email,
		Roles:        entity.Roles{entity.RoleOperador},
	}

	saved, err := srv.identityRepo.Upsert(ctx, provisioned)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityExists) {
			// A concurrent resolution provisioned the same email first.
			existing, readErr := srv.identityRepo.FindByEmail(ctx, assertion.Email)
			if readErr != nil {
				return nil, errors.Wrap(readErr, "failed to re-read identity after provisioning race")
			}

			return entity.NewPrincipal(existing), nil
		}

		return nil, errors.Wrap(err, "failed to provision identity for federated login")
	}

	return entity.NewPrincipal(saved), nil
}

// ResolveBearer rebuilds a fresh Principal for the subject of a verified
// token. The token's embedded authorities are ignored in favor of the live
// identity record, so a role revoked after issuance takes effect immediately.
func (srv *authnService) ResolveBearer(ctx context.Context, claims *service.Claims) (*entity.Principal, error) {
	identity, err := srv.identityRepo.FindByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			// Deliberate fallback: keep the token-only principal so generic
			// resource checks can still proceed.
			return entity.NewTokenPrincipal(claims.Subject, claims.Email, claims.Authorities), nil
		}

		return nil, errors.Wrap(err, "failed to re-resolve bearer subject")
	}

	return entity.NewPrincipal(identity), nil
}

func (srv *authnService) issueTokenPair(ctx context.Context, principal *entity.Principal) (*usecase.LoginOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	srv.log(ctx).Debug("Issued token pair", slog.String("subject", principal.Name()))

	return &usecase.LoginOutput{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        int64(srv.tokenService.AccessTokenTTL().Seconds()),
		RefreshExpiresIn: int64(srv.tokenService.RefreshTokenTTL().Seconds()),
		Identity:         principal.Identity(),
	}, nil
}

// loginFromEmail derives the login for an auto-provisioned identity from the
// local part of the email. Example: "maria@gmail.com" -> "maria".
func loginFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}
