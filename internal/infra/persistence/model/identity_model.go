package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityModel mirrors the 'identities' table. PostgreSQL generates UUIDs via
// gen_random_uuid(); login and email each carry a unique index.
type IdentityModel struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Login        string      `gorm:"type:varchar(100);unique;not null"`
	PasswordHash string      `gorm:"type:varchar(300);not null;column:password_hash"`
	Email        string      `gorm:"type:varchar(255);unique;not null"`
	Roles        StringArray `gorm:"type:text[]"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}
