package handler

import (
	"log/slog"
	"net/http"

	"libris/internal/delivery/http/response"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookHandler holds dependencies for book catalog handlers.
type BookHandler struct {
	catalog usecase.CatalogUsecase
	logger  *slog.Logger
}

// NewBookHandler is the constructor for BookHandler, injected by Fx.
func NewBookHandler(catalog usecase.CatalogUsecase, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Create handles the book creation request.
func (h *BookHandler) Create(c echo.Context) error {
	var input usecase.BookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.catalog.CreateBook(c.Request().Context(), &input)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return domainerrors.ErrValidationFailed.WrapMessage("referenced author does not exist")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, book, "Book created successfully")
}

// Get handles the book lookup request.
func (h *BookHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid book id")
	}

	book, err := h.catalog.GetBook(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("book not found")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, book, "Book retrieved successfully")
}

// List handles the book listing request.
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.catalog.ListBooks(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}

// Update handles the book update request.
func (h *BookHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid book id")
	}

	var input usecase.BookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.catalog.UpdateBook(c.Request().Context(), id, &input)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("book not found")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, book, "Book updated successfully")
}

// Delete handles the book deletion request.
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid book id")
	}

	if err := h.catalog.DeleteBook(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("book not found")
		}

		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
