package impl

import (
	"context"
	"log/slog"

	deliverycontext "libris/internal/delivery/context"
	"libris/internal/domain/entity"
	"libris/internal/domain/repository"
	"libris/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface. It is plain
// persistence plumbing; authorization happens at the route level.
type catalogService struct {
	authorRepo repository.AuthorRepository
	bookRepo   repository.BookRepository
	logger     *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	AuthorRepo repository.AuthorRepository
	BookRepo   repository.BookRepository
	Logger     *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		authorRepo: params.AuthorRepo,
		bookRepo:   params.BookRepo,
		logger:     params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogService) CreateAuthor(ctx context.Context, input *usecase.AuthorInput) (*entity.Author, error) {
	author := &entity.Author{
		Name:        input.Name,
		Nationality: input.Nationality,
		BirthDate:   input.BirthDate,
	}

	if err := srv.authorRepo.Create(ctx, author); err != nil {
		return nil, errors.Wrap(err, "failed to create author")
	}

	srv.log(ctx).Debug("Created author", slog.Any("authorID", author.ID))

	return author, nil
}

func (srv *catalogService) GetAuthor(ctx context.Context, id uuid.UUID) (*entity.Author, error) {
	author, err := srv.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get author")
	}

	return author, nil
}

func (srv *catalogService) ListAuthors(ctx context.Context) ([]*entity.Author, error) {
	authors, err := srv.authorRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list authors")
	}

	return authors, nil
}

func (srv *catalogService) UpdateAuthor(ctx context.Context, id uuid.UUID, input *usecase.AuthorInput) (*entity.Author, error) {
	author, err := srv.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load author for update")
	}

	author.Name = input.Name
	author.Nationality = input.Nationality
	author.BirthDate = input.BirthDate

	if err := srv.authorRepo.Update(ctx, author); err != nil {
		return nil, errors.Wrap(err, "failed to update author")
	}

	return author, nil
}

func (srv *catalogService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if err := srv.authorRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete author")
	}

	srv.log(ctx).Info("Deleted author", slog.Any("authorID", id))

	return nil
}

func (srv *catalogService) CreateBook(ctx context.Context, input *usecase.BookInput) (*entity.Book, error) {
	// The referenced author must exist before the book is accepted.
	if _, err := srv.authorRepo.FindByID(ctx, input.AuthorID); err != nil {
		return nil, errors.Wrap(err, "failed to resolve book author")
	}

	book := &entity.Book{
		ISBN:        input.ISBN,
		Title:       input.Title,
		Genre:       input.Genre,
		Price:       input.Price,
		PublishedAt: input.PublishedAt,
		AuthorID:    input.AuthorID,
	}

	if err := srv.bookRepo.Create(ctx, book); err != nil {
		return nil, errors.Wrap(err, "failed to create book")
	}

	srv.log(ctx).Debug("Created book", slog.Any("bookID", book.ID))

	return book, nil
}

func (srv *catalogService) GetBook(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get book")
	}

	return book, nil
}

func (srv *catalogService) ListBooks(ctx context.Context) ([]*entity.Book, error) {
	books, err := srv.bookRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	return books, nil
}

func (srv *catalogService) UpdateBook(ctx context.Context, id uuid.UUID, input *usecase.BookInput) (*entity.Book, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load book for update")
	}

	book.ISBN = input.ISBN
	book.Title = input.Title
	book.Genre = input.Genre
	book.Price = input.Price
	book.PublishedAt = input.PublishedAt
	book.AuthorID = input.AuthorID

	if err := srv.bookRepo.Update(ctx, book); err != nil {
		return nil, errors.Wrap(err, "failed to update book")
	}

	return book, nil
}

func (srv *catalogService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := srv.bookRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete book")
	}

	srv.log(ctx).Info("Deleted book", slog.Any("bookID", id))

	return nil
}
