// internal/services/bookstore_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
	"github.com/bookhaven/bookmarket-backend/internal/repositories"
	"github.com/bookhaven/bookmarket-backend/internal/utils"
)

type BookstoreService struct {
	db         Transactor
	bookstores repositories.BookstoreRepository
}

type CreateBookstoreRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type UpdateBookstoreRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func NewBookstoreService(db Transactor, bookstores repositories.BookstoreRepository) *BookstoreService {
	return &BookstoreService{
		db:         db,
		bookstores: bookstores,
	}
}

// CreateBookstore opens a storefront for the user and promotes them to the
// owner role in the same transaction. One storefront per user; a second
// attempt conflicts on owner_id.
func (s *BookstoreService) CreateBookstore(ownerID uuid.UUID, req *CreateBookstoreRequest) (*models.Bookstore, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "invalid bookstore")
	}

	store := &models.Bookstore{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.bookstores.Create(tx, store); err != nil {
			if isUniqueViolation(err) {
				return apperrors.Wrap(apperrors.KindConflict, err, "user already owns a bookstore")
			}
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", ownerID).
			Update("role", models.UserRoleOwner).
			Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"bookstore_id": store.ID,
		"owner_id":     ownerID,
	}).Info("Bookstore created")

	return store, nil
}

func (s *BookstoreService) GetBookstore(id uint) (*models.Bookstore, error) {
	store, err := s.bookstores.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("bookstore %d not found", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return store, nil
}

func (s *BookstoreService) GetBookstoreByOwner(ownerID uuid.UUID) (*models.Bookstore, error) {
	store, err := s.bookstores.GetByOwner(nil, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user does not own a bookstore")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return store, nil
}

// UpdateBookstore applies partial profile edits to the caller's own store.
func (s *BookstoreService) UpdateBookstore(ownerID uuid.UUID, req *UpdateBookstoreRequest) (*models.Bookstore, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "invalid bookstore update")
	}

	store, err := s.bookstores.GetByOwner(nil, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Authorization("user does not own a bookstore")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(store).Error
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
