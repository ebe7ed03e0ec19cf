// Package repository defines the persistence contracts the domain depends on.
// Concrete implementations live in the infra layer.
package repository

import (
	"context"

	"libris/internal/domain/entity"
	"libris/internal/errors"
)

var (
	// ErrIdentityNotFound is returned when no identity matches the lookup key.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrIdentityExists is returned by Upsert when a concurrent insert won the
	// race on a unique key. Callers treat it as "already exists, re-read".
	ErrIdentityExists = errors.New("identity already exists")
)

// IdentityRepository is the identity-store collaborator contract.
// Login and email are each globally unique within the store.
type IdentityRepository interface {
	// FindByLogin retrieves an identity by its unique login.
	FindByLogin(ctx context.Context, login string) (*entity.Identity, error)

	// FindByEmail retrieves an identity by its unique email.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// Upsert persists the identity, inserting when the id is zero and
	// updating otherwise. A lost insert race on login or email surfaces as
	// ErrIdentityExists rather than silent duplication.
	Upsert(ctx context.Context, identity *entity.Identity) (*entity.Identity, error)
}
