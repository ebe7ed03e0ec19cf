// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// identityRepository implements the domain's IdentityRepository interface using GORM.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// FindByLogin retrieves a single identity by its unique login.
func (repo *identityRepository) FindByLogin(ctx context.Context, login string) (*entity.Identity, error) {
	var identityM model.IdentityModel
	if err := repo.db.WithContext(ctx).
		Where("login = ?", login).
		First(&identityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity by login")
	}

	return toIdentityDomain(&identityM), nil
}

// FindByEmail retrieves a single identity by its unique email address.
func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var identityM model.IdentityModel
	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&identityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity by email")
	}

	return toIdentityDomain(&identityM), nil
}

// Upsert persists the identity: insert when the id is zero, update otherwise.
// A unique-key collision on insert surfaces as ErrIdentityExists so the caller
// can resolve the race with a re-read instead of duplicating the record.
func (repo *identityRepository) Upsert(ctx context.Context, identity *entity.Identity) (*entity.Identity, error) {
	identityM := fromIdentityDomain(identity)

	if identity.ID == uuid.Nil {
		if err := repo.db.WithContext(ctx).Create(identityM).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				return nil, repository.ErrIdentityExists
			}
			if isNotNullConstraintViolation(err) {
				return nil, domainerrors.ErrValidationFailed.WrapMessage("missing required identity information")
			}

			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
		}
	} else {
		if err := repo.db.WithContext(ctx).Save(identityM).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				return nil, repository.ErrIdentityExists
			}

			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update identity")
		}
	}

	return toIdentityDomain(identityM), nil
}

// --- Mapper Functions ---

// toIdentityDomain converts a GORM IdentityModel to a domain Identity entity.
func toIdentityDomain(data *model.IdentityModel) *entity.Identity {
	if data == nil {
		return nil
	}

	return &entity.Identity{
		ID:           data.ID,
		Login:        data.Login,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
		Roles:        entity.RolesFromStrings(data.Roles),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromIdentityDomain converts a domain Identity entity to a GORM IdentityModel.
func fromIdentityDomain(data *entity.Identity) *model.IdentityModel {
	if data == nil {
		return nil
	}

	return &model.IdentityModel{
		ID:           data.ID,
		Login:        data.Login,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
		Roles:        model.StringArray(data.Roles.ToStrings()),
	}
}
