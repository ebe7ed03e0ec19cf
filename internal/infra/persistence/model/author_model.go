package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthorModel mirrors the 'authors' table.
type AuthorModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Nationality string    `gorm:"type:varchar(100)"`
	BirthDate   time.Time `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Books []*BookModel `gorm:"foreignKey:AuthorID"`
}

// TableName explicitly sets the table name for GORM.
func (AuthorModel) TableName() string {
	return "authors"
}
