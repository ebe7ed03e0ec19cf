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

// AuthorHandler holds dependencies for author catalog handlers.
type AuthorHandler struct {
	catalog usecase.CatalogUsecase
	logger  *slog.Logger
}

// NewAuthorHandler is the constructor for AuthorHandler, injected by Fx.
func NewAuthorHandler(catalog usecase.CatalogUsecase, logger *slog.Logger) *AuthorHandler {
	return &AuthorHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Create handles the author creation request.
func (h *AuthorHandler) Create(c echo.Context) error {
	var input usecase.AuthorInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid author input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.catalog.CreateAuthor(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, author, "Author created successfully")
}

// Get handles the author lookup request.
func (h *AuthorHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid author id")
	}

	author, err := h.catalog.GetAuthor(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("author not found")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, author, "Author retrieved successfully")
}

// List handles the author listing request.
func (h *AuthorHandler) List(c echo.Context) error {
	authors, err := h.catalog.ListAuthors(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, authors, "Authors retrieved successfully")
}

// Update handles the author update request.
func (h *AuthorHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid author id")
	}

	var input usecase.AuthorInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid author input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.catalog.UpdateAuthor(c.Request().Context(), id, &input)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("author not found")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, author, "Author updated successfully")
}

// Delete handles the author deletion request.
func (h *AuthorHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid author id")
	}

	if err := h.catalog.DeleteAuthor(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("author not found")
		}

		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
