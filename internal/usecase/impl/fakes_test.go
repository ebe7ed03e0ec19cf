package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"libris/config"
	"libris/internal/domain/entity"
	"libris/internal/domain/repository"
	"libris/internal/domain/service"
	"libris/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHasher() service.PasswordHasher {
	return auth.NewBcryptHasherWithCost(bcrypt.MinCost)
}

func testTokenService(t *testing.T) service.TokenService {
	t.Helper()

	svc, err := auth.NewTokenService(&config.Config{
		Token: &config.TokenConfig{
			Issuer:   "libris-test",
			Audience: "libris-api",
		},
	})
	require.NoError(t, err)

	return svc
}

// fakeIdentityRepo is an in-memory IdentityRepository. Setting failWith makes
// every call return that error, simulating an unavailable store.
type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities map[string]*entity.Identity // keyed by login
	failWith   error
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*entity.Identity)}
}

func (r *fakeIdentityRepo) FindByLogin(_ context.Context, login string) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}
	if identity, ok := r.identities[login]; ok {
		clone := *identity

		return &clone, nil
	}

	return nil, repository.ErrIdentityNotFound
}

func (r *fakeIdentityRepo) FindByEmail(_ context.Context, email string) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, identity := range r.identities {
		if identity.Email == email {
			clone := *identity

			return &clone, nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

func (r *fakeIdentityRepo) Upsert(_ context.Context, identity *entity.Identity) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	if identity.ID == uuid.Nil {
		for _, existing := range r.identities {
			if existing.Login == identity.Login || existing.Email == identity.Email {
				return nil, repository.ErrIdentityExists
			}
		}
		identity.ID = uuid.New()
	}

	clone := *identity
	r.identities[identity.Login] = &clone

	return identity, nil
}

// fakeClientRepo is an in-memory ClientRepository.
type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*entity.Client // keyed by client id
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) FindByClientID(_ context.Context, clientID string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[clientID]; ok {
		clone := *client

		return &clone, nil
	}

	return nil, repository.ErrClientNotFound
}

func (r *fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	clone := *client
	r.clients[client.ClientID] = &clone

	return nil
}

// fakeFederatedVerifier returns a canned assertion result.
type fakeFederatedVerifier struct {
	identity *service.FederatedIdentity
	err      error
}

func (v *fakeFederatedVerifier) VerifyAssertion(context.Context, string) (*service.FederatedIdentity, error) {
	if v.err != nil {
		return nil, v.err
	}

	return v.identity, nil
}
