package entity

import (
	"time"

	"github.com/google/uuid"
)

// Author is a catalog entity describing a book author.
type Author struct {
	ID          uuid.UUID
	Name        string
	Nationality string
	BirthDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Book is a catalog entity. Every book references exactly one author.
type Book struct {
	ID          uuid.UUID
	ISBN        string // Unique within the catalog.
	Title       string
	Genre       string
	Price       float64
	PublishedAt time.Time
	AuthorID    uuid.UUID
	Author      *Author // Populated on reads; nil when not loaded.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
