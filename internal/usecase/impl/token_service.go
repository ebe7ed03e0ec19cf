package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "libris/internal/delivery/context"
	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/domain/service"
	"libris/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenGrantService implements the TokenUsecase interface: the OAuth2 token
// endpoint grants plus the surrounding protocol surface.
type tokenGrantService struct {
	registry     usecase.ClientRegistry
	clientRepo   repository.ClientRepository
	identityRepo repository.IdentityRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	codes        *codeStore
	logger       *slog.Logger
}

// TokenGrantServiceParams holds dependencies for tokenGrantService, injected by Fx.
type TokenGrantServiceParams struct {
	fx.In

	Registry     usecase.ClientRegistry
	ClientRepo   repository.ClientRepository
	IdentityRepo repository.IdentityRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewTokenGrantService is the constructor for tokenGrantService.
func NewTokenGrantService(params TokenGrantServiceParams) usecase.TokenUsecase {
	return &tokenGrantService{
		registry:     params.Registry,
		clientRepo:   params.ClientRepo,
		identityRepo: params.IdentityRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		codes:        newCodeStore(),
		logger:       params.Logger,
	}
}

func (srv *tokenGrantService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// authenticateClient resolves and verifies the calling client. Unknown
// client id and wrong secret collapse into the same generic failure, with a
// burned hash comparison to keep the latency class uniform.
func (srv *tokenGrantService) authenticateClient(ctx context.Context, clientID, clientSecret string) (*usecase.RegisteredClient, error) {
	client, err := srv.registry.Resolve(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			srv.hasher.Check(clientSecret, dummyHash)

			return nil, domainerrors.ErrInvalidClient.WrapMessage("client authentication failed")
		}

		return nil, errors.Wrap(err, "failed to resolve client")
	}

	if !srv.hasher.Check(clientSecret, client.SecretHash) {
		return nil, domainerrors.ErrInvalidClient.WrapMessage("client authentication failed")
	}

	return client, nil
}

// Token dispatches a token-endpoint request to the requested grant.
func (srv *tokenGrantService) Token(ctx context.Context, input *usecase.TokenRequestInput) (*usecase.TokenOutput, error) {
	client, err := srv.authenticateClient(ctx, input.ClientID, input.ClientSecret)
	if err != nil {
		return nil, err
	}

	grant := entity.GrantType(input.GrantType)
	if !client.AllowsGrant(grant) {
		return nil, domainerrors.ErrUnsupportedGrantType.WrapMessage("grant not allowed for client")
	}

	switch grant {
	case entity.GrantClientCredentials:
		return srv.clientCredentialsGrant(ctx, client)
	case entity.GrantAuthorizationCode:
		return srv.authorizationCodeGrant(ctx, client, input)
	case entity.GrantRefreshToken:
		return srv.refreshTokenGrant(ctx, input)
	default:
		return nil, domainerrors.ErrUnsupportedGrantType.WrapMessage("unknown grant type")
	}
}

// clientCredentialsGrant issues an access token for the client itself.
// The client's scope doubles as its authority set.
func (srv *tokenGrantService) clientCredentialsGrant(ctx context.Context, client *usecase.RegisteredClient) (*usecase.TokenOutput, error) {
	principal := entity.NewTokenPrincipal(client.ClientID, "", strings.Fields(client.Scope))

	accessToken, err := srv.tokenService.IssueAccessToken(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token for client")
	}

	srv.log(ctx).Info("Issued client-credentials token", slog.String("clientID", client.ClientID))

	return &usecase.TokenOutput{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(srv.tokenService.AccessTokenTTL().Seconds()),
		Scope:       client.Scope,
	}, nil
}

// authorizationCodeGrant redeems a one-time code and issues a token pair for
// the subject the code was bound to. Claims come from the live identity.
func (srv *tokenGrantService) authorizationCodeGrant(ctx context.Context, client *usecase.RegisteredClient, input *usecase.TokenRequestInput) (*usecase.TokenOutput, error) {
	entry, ok := srv.codes.Redeem(input.Code)
	if !ok || entry.clientID != client.ClientID || entry.redirectURI != input.RedirectURI {
		return nil, domainerrors.ErrInvalidGrant.WrapMessage("authorization code rejected")
	}

	identity, err := srv.identityRepo.FindByLogin(ctx, entry.subject)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrInvalidGrant.WrapMessage("authorization code subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to resolve authorization code subject")
	}

	return srv.issuePairFor(ctx, entity.NewPrincipal(identity))
}

// refreshTokenGrant verifies the presented refresh token and issues a fresh
// access token. Claims are always recomputed from the current identity state,
// never copied from the token being refreshed, so refresh cannot silently
// extend privileges.
func (srv *tokenGrantService) refreshTokenGrant(ctx context.Context, input *usecase.TokenRequestInput) (*usecase.TokenOutput, error) {
	claims, err := srv.tokenService.Parse(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidGrant.WrapMessage("refresh token rejected")
	}
	if claims.TokenType != service.TokenTypeRefresh {
		return nil, domainerrors.ErrInvalidGrant.WrapMessage("presented token is not a refresh token")
	}

	identity, err := srv.identityRepo.FindByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrInvalidGrant.WrapMessage("refresh subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to resolve refresh subject")
	}

	principal := entity.NewPrincipal(identity)

	accessToken, err := srv.tokenService.IssueAccessToken(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refreshed access token")
	}

	srv.log(ctx).Debug("Refreshed access token", slog.String("subject", principal.Name()))

	// The refresh token itself is returned unchanged; it stays valid until
	// its own expiry, so the reported lifetime is the time remaining.
	return &usecase.TokenOutput{
		AccessToken:      accessToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(srv.tokenService.AccessTokenTTL().Seconds()),
		RefreshExpiresIn: int64(time.Until(claims.ExpiresAt.Time).Seconds()),
		RefreshToken:     input.RefreshToken,
	}, nil
}

// issuePairFor mints an access/refresh pair for the principal.
func (srv *tokenGrantService) issuePairFor(ctx context.Context, principal *entity.Principal) (*usecase.TokenOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	srv.log(ctx).Debug("Issued token pair", slog.String("subject", principal.Name()))

	return &usecase.TokenOutput{
		AccessToken:      accessToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(srv.tokenService.AccessTokenTTL().Seconds()),
		RefreshExpiresIn: int64(srv.tokenService.RefreshTokenTTL().Seconds()),
		RefreshToken:     refreshToken,
	}, nil
}

// Authorize issues a one-time authorization code after checking the client
// and its registered redirect URI.
func (srv *tokenGrantService) Authorize(ctx context.Context, input *usecase.AuthorizeInput) (string, error) {
	client, err := srv.registry.Resolve(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return "", domainerrors.ErrInvalidClient.WrapMessage("unknown client at authorization endpoint")
		}

		return "", errors.Wrap(err, "failed to resolve client for authorization")
	}

	if client.RedirectURI != input.RedirectURI {
		return "", domainerrors.ErrInvalidGrant.WrapMessage("redirect uri mismatch")
	}

	code := srv.codes.Issue(input.Principal.Name(), client.ClientID, client.RedirectURI)

	srv.log(ctx).Info("Issued authorization code",
		slog.String("clientID", client.ClientID),
		slog.String("subject", input.Principal.Name()))

	return code, nil
}

// Introspect reports a token's state statelessly: signature plus expiry
// decide activeness, there is no server-side revocation list.
func (srv *tokenGrantService) Introspect(ctx context.Context, input *usecase.IntrospectInput) (*usecase.IntrospectOutput, error) {
	if _, err := srv.authenticateClient(ctx, input.ClientID, input.ClientSecret); err != nil {
		return nil, err
	}

	claims, err := srv.tokenService.Parse(input.Token)
	if err != nil {
		// Per RFC 7662 an unverifiable token is reported inactive, not an error.
		return &usecase.IntrospectOutput{Active: false}, nil
	}

	out := &usecase.IntrospectOutput{
		Active:      true,
		Subject:     claims.Subject,
		Email:       claims.Email,
		Authorities: claims.Authorities,
		TokenType:   claims.TokenType,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}

	return out, nil
}

// Revoke accepts a revocation request. Issued tokens are self-contained, so
// revocation has no server-side effect in the base design; deployments that
// need immediate revocation must layer a denylist on top.
func (srv *tokenGrantService) Revoke(ctx context.Context, input *usecase.IntrospectInput) error {
	if _, err := srv.authenticateClient(ctx, input.ClientID, input.ClientSecret); err != nil {
		return err
	}

	srv.log(ctx).Info("Revocation accepted for self-contained token")

	return nil
}

// RegisterClient persists a new OAuth2 client. The secret is hashed through
// the credential verifier before it reaches the store.
func (srv *tokenGrantService) RegisterClient(ctx context.Context, input *usecase.RegisterClientInput) (*entity.Client, error) {
	secretHash, err := srv.hasher.Hash(input.Secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash client secret")
	}

	client := &entity.Client{
		ClientID:    input.ClientID,
		SecretHash:  secretHash,
		RedirectURI: input.RedirectURI,
		Scope:       input.Scope,
	}

	if err := srv.clientRepo.Create(ctx, client); err != nil {
		return nil, errors.Wrap(err, "failed to persist client")
	}

	srv.log(ctx).Info("Registered client", slog.String("clientID", client.ClientID))

	return client, nil
}
