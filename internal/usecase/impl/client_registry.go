package impl

import (
	"context"
	"log/slog"

	"libris/config"
	deliverycontext "libris/internal/delivery/context"
	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// clientRegistry adapts stored Client records into the RegisteredClient
// descriptors token issuance consumes. The grant-type set and token policy
// are shared across all clients in the reference policy.
type clientRegistry struct {
	clientRepo repository.ClientRepository
	cfg        *config.Config
	logger     *slog.Logger
}

// ClientRegistryParams holds dependencies for clientRegistry, injected by Fx.
type ClientRegistryParams struct {
	fx.In

	ClientRepo repository.ClientRepository
	Config     *config.Config
	Logger     *slog.Logger
}

// NewClientRegistry is the constructor for clientRegistry.
func NewClientRegistry(params ClientRegistryParams) usecase.ClientRegistry {
	return &clientRegistry{
		clientRepo: params.ClientRepo,
		cfg:        params.Config,
		logger:     params.Logger,
	}
}

func (r *clientRegistry) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, r.logger)
}

// Resolve translates the stored client record for clientID into a descriptor.
// An unknown client id surfaces as repository.ErrClientNotFound; the caller
// collapses it with a wrong secret into one generic response.
func (r *clientRegistry) Resolve(ctx context.Context, clientID string) (*usecase.RegisteredClient, error) {
	client, err := r.clientRepo.FindByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			// Log without distinguishing from a bad secret downstream.
			r.log(ctx).Warn("Client resolution failed")

			return nil, repository.ErrClientNotFound
		}

		return nil, errors.Wrap(err, "failed to look up client by client id")
	}

	return &usecase.RegisteredClient{
		ID:          client.ID.String(),
		ClientID:    client.ClientID,
		SecretHash:  client.SecretHash,
		RedirectURI: client.RedirectURI,
		Scope:       client.Scope,
		GrantTypes: []entity.GrantType{
			entity.GrantAuthorizationCode,
			entity.GrantClientCredentials,
			entity.GrantRefreshToken,
		},
		AccessTokenTTL:  r.cfg.Token.AccessTTL(),
		RefreshTokenTTL: r.cfg.Token.RefreshTTL(),
	}, nil
}

// FindByID is not supported until clients can self-register; it fails closed.
func (r *clientRegistry) FindByID(ctx context.Context, id string) (*usecase.RegisteredClient, error) {
	return nil, repository.ErrClientNotFound
}

// Save is not supported until clients can self-register; it fails closed
// rather than pretending to persist.
func (r *clientRegistry) Save(ctx context.Context, client *usecase.RegisteredClient) error {
	return domainerrors.ErrNotImplemented.WrapMessage("client self-registration is not supported")
}
