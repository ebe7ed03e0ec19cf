package model

import (
	"time"

	"github.com/google/uuid"
)

// ClientModel mirrors the 'clients' table holding registered OAuth2 clients.
// Only the hash of the client secret is stored.
type ClientModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientID    string    `gorm:"type:varchar(150);unique;not null;column:client_id"`
	SecretHash  string    `gorm:"type:varchar(300);not null;column:secret_hash"`
	RedirectURI string    `gorm:"type:varchar(500);not null;column:redirect_uri"`
	Scope       string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ClientModel) TableName() string {
	return "clients"
}
