package usecase

import (
	"context"
	"time"

	"libris/internal/domain/entity"

	"github.com/google/uuid"
)

// AuthorInput defines the data required to create or update an author.
type AuthorInput struct {
	Name        string    `json:"name" validate:"required"`
	Nationality string    `json:"nationality" validate:"required"`
	BirthDate   time.Time `json:"birthDate" validate:"required"`
}

// BookInput defines the data required to create or update a book.
type BookInput struct {
	ISBN        string    `json:"isbn" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Genre       string    `json:"genre" validate:"required"`
	Price       float64   `json:"price" validate:"gte=0"`
	PublishedAt time.Time `json:"publishedAt" validate:"required"`
	AuthorID    uuid.UUID `json:"authorId" validate:"required"`
}

// CatalogUsecase covers the author/book persistence plumbing. It carries no
// authorization logic; role checks happen at the route level.
type CatalogUsecase interface {
	CreateAuthor(ctx context.Context, input *AuthorInput) (*entity.Author, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*entity.Author, error)
	ListAuthors(ctx context.Context) ([]*entity.Author, error)
	UpdateAuthor(ctx context.Context, id uuid.UUID, input *AuthorInput) (*entity.Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error

	CreateBook(ctx context.Context, input *BookInput) (*entity.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	ListBooks(ctx context.Context) ([]*entity.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input *BookInput) (*entity.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
