// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the durable account record behind every authenticated caller.
// Both login and email are globally unique within the store; the password is
// only ever held as a one-way hash.
type Identity struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account.
	Login        string    // Unique login name used for password authentication.
	PasswordHash string    // Salted one-way hash of the password. Never the plaintext, never logged.
	Email        string    // Unique contact email; the lookup key for federated login.
	Roles        Roles     // Role names granted to this account. Order is irrelevant.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
