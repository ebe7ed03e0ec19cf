package model

import (
	"time"

	"github.com/google/uuid"
)

// BookModel mirrors the 'books' table. ISBN is unique within the catalog and
// AuthorID references authors.id.
type BookModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ISBN        string    `gorm:"type:varchar(20);unique;not null;column:isbn"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Genre       string    `gorm:"type:varchar(100)"`
	Price       float64   `gorm:"type:numeric(18,2)"`
	PublishedAt time.Time `gorm:"type:date"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author *AuthorModel `gorm:"foreignKey:AuthorID"`
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
