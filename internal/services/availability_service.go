// internal/services/availability_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
	"github.com/bookhaven/bookmarket-backend/internal/repositories"
)

// AvailabilityService enforces the status rules for catalog items: the
// three-value vocabulary, and mutation rights scoped to the owning
// bookstore. Any enumerated value may transition to any other; the only
// guards are validity and ownership.
type AvailabilityService struct {
	db           Transactor
	bookstores   repositories.BookstoreRepository
	books        repositories.BookRepository
	libraryBooks repositories.LibraryBookRepository
}

func NewAvailabilityService(
	db Transactor,
	bookstores repositories.BookstoreRepository,
	books repositories.BookRepository,
	libraryBooks repositories.LibraryBookRepository,
) *AvailabilityService {
	return &AvailabilityService{
		db:           db,
		bookstores:   bookstores,
		books:        books,
		libraryBooks: libraryBooks,
	}
}

// SetAvailability updates an item's status on behalf of requesterID.
// Ownership is re-derived from the bookstore row whose owner_id matches the
// requester; a bookstore id cached on the session is never trusted, since it
// can drift out of sync with actual ownership.
func (s *AvailabilityService) SetAvailability(ref models.ItemRef, requesterID uuid.UUID, status models.AvailabilityStatus) (*CatalogItem, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("invalid availability status %q", status)
	}
	if !ref.Kind.Valid() {
		return nil, apperrors.Validation("invalid item kind %q", ref.Kind)
	}

	var item CatalogItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch ref.Kind {
		case models.ItemKindLibrary:
			book, err := s.libraryBooks.GetByID(tx, ref.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("library book %d not found", ref.ID)
				}
				return err
			}

			if err := s.authorize(tx, requesterID, book.BookstoreID); err != nil {
				return err
			}

			if err := s.libraryBooks.UpdateAvailability(tx, book.ID, status); err != nil {
				return err
			}
			book.AvailabilityStatus = status
			item = CatalogItemFromLibraryBook(book)

		default:
			book, err := s.books.GetByID(tx, ref.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("book %d not found", ref.ID)
				}
				return err
			}

			// Marketplace-owned books have no storefront and cannot be
			// mutated through the owner path.
			if book.BookstoreID == nil {
				return apperrors.Authorization("book %d is not owned by a bookstore", ref.ID)
			}
			if err := s.authorize(tx, requesterID, *book.BookstoreID); err != nil {
				return err
			}

			if err := s.books.UpdateAvailability(tx, book.ID, status); err != nil {
				return err
			}
			book.AvailabilityStatus = status
			item = CatalogItemFromBook(book)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *AvailabilityService) authorize(tx *gorm.DB, requesterID uuid.UUID, owningBookstoreID uint) error {
	store, err := s.bookstores.GetByOwner(tx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Authorization("user does not own a bookstore")
		}
		return err
	}
	if store.ID != owningBookstoreID {
		return apperrors.Authorization("bookstore does not own this item")
	}
	return nil
}
