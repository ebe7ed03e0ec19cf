package repository

import (
	"context"

	"libris/internal/domain/entity"
	"libris/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrAuthorNotFound is returned when no author matches the given id.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrBookNotFound is returned when no book matches the given id.
	ErrBookNotFound = errors.New("book not found")
)

// AuthorRepository persists catalog authors.
type AuthorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Author, error)
	List(ctx context.Context) ([]*entity.Author, error)
	Create(ctx context.Context, author *entity.Author) error
	Update(ctx context.Context, author *entity.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookRepository persists catalog books.
type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	List(ctx context.Context) ([]*entity.Book, error)
	Create(ctx context.Context, book *entity.Book) error
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}
