package repository

import (
	"context"

	"libris/internal/domain/entity"
	"libris/internal/errors"
)

// ErrClientNotFound is returned when no client matches the given client id.
var ErrClientNotFound = errors.New("client not found")

// ClientRepository is the client-registry collaborator contract.
type ClientRepository interface {
	// FindByClientID retrieves a registered client by its public client id.
	FindByClientID(ctx context.Context, clientID string) (*entity.Client, error)

	// Create persists a newly registered client.
	Create(ctx context.Context, client *entity.Client) error
}
