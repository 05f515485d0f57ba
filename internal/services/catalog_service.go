// internal/services/catalog_service.go
package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
	"github.com/bookhaven/bookmarket-backend/internal/repositories"
	"github.com/bookhaven/bookmarket-backend/internal/utils"
)

// CatalogItem is the merged-listing view over both item kinds. ID carries
// the boundary encoding (library items prefixed) so ids from the two spaces
// cannot collide in one payload; internally everything works on ItemRef.
type CatalogItem struct {
	ID                 string                    `json:"id"`
	Kind               models.ItemKind           `json:"kind"`
	BookstoreID        *uint                     `json:"bookstore_id,omitempty"`
	Title              string                    `json:"title"`
	Author             string                    `json:"author"`
	ISBN               string                    `json:"isbn,omitempty"`
	Description        string                    `json:"description,omitempty"`
	Price              float64                   `json:"price"`
	Condition          models.BookCondition      `json:"condition,omitempty"`
	Images             []string                  `json:"images,omitempty"`
	Tags               []string                  `json:"tags,omitempty"`
	AvailabilityStatus models.AvailabilityStatus `json:"availability_status"`
	Orderable          bool                      `json:"orderable"`
	CreatedAt          time.Time                 `json:"created_at"`
}

func CatalogItemFromBook(b *models.Book) CatalogItem {
	return CatalogItem{
		ID:                 b.Ref().String(),
		Kind:               models.ItemKindRegular,
		BookstoreID:        b.BookstoreID,
		Title:              b.Title,
		Author:             b.Author,
		ISBN:               b.ISBN,
		Description:        b.Description,
		Price:              b.Price,
		Images:             b.Images,
		Tags:               b.Tags,
		AvailabilityStatus: b.AvailabilityStatus,
		Orderable:          b.Orderable(),
		CreatedAt:          b.CreatedAt,
	}
}

func CatalogItemFromLibraryBook(b *models.LibraryBook) CatalogItem {
	bookstoreID := b.BookstoreID
	return CatalogItem{
		ID:                 b.Ref().String(),
		Kind:               models.ItemKindLibrary,
		BookstoreID:        &bookstoreID,
		Title:              b.Title,
		Author:             b.Author,
		ISBN:               b.ISBN,
		Description:        b.Description,
		Price:              b.Price,
		Condition:          b.Condition,
		AvailabilityStatus: b.AvailabilityStatus,
		Orderable:          b.Orderable(),
		CreatedAt:          b.CreatedAt,
	}
}

type CatalogService struct {
	db           *gorm.DB
	bookstores   repositories.BookstoreRepository
	books        repositories.BookRepository
	libraryBooks repositories.LibraryBookRepository
}

type CatalogSearchParams struct {
	utils.PaginationParams
	Kind          *models.ItemKind
	BookstoreID   *uint
	Status        *models.AvailabilityStatus
	OrderableOnly bool
	PriceMin      *float64
	PriceMax      *float64
}

type CreateBookRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Author      string   `json:"author" validate:"required,min=1,max=255"`
	ISBN        string   `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" validate:"required,min=0.01"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type CreateLibraryBookRequest struct {
	Title       string               `json:"title" validate:"required,min=1,max=255"`
	Author      string               `json:"author" validate:"required,min=1,max=255"`
	ISBN        string               `json:"isbn,omitempty" validate:"omitempty,max=20"`
	Description string               `json:"description,omitempty"`
	Price       float64              `json:"price" validate:"required,min=0.01"`
	Condition   models.BookCondition `json:"condition,omitempty"`
}

func NewCatalogService(
	db *gorm.DB,
	bookstores repositories.BookstoreRepository,
	books repositories.BookRepository,
	libraryBooks repositories.LibraryBookRepository,
) *CatalogService {
	return &CatalogService{
		db:           db,
		bookstores:   bookstores,
		books:        books,
		libraryBooks: libraryBooks,
	}
}

// ListCatalog returns one page of the combined listing. When both kinds are
// requested the two tables are queried with the same filters and merged by
// creation time; library ids come out namespaced so the merged page has no
// id collisions.
func (s *CatalogService) ListCatalog(params CatalogSearchParams) ([]CatalogItem, int64, error) {
	var items []CatalogItem
	var total int64

	includeRegular := params.Kind == nil || *params.Kind == models.ItemKindRegular
	includeLibrary := params.Kind == nil || *params.Kind == models.ItemKindLibrary

	// Upper bound on rows each table must contribute to fill this page.
	fetchLimit := params.Page * params.Limit

	if includeRegular {
		query := s.applyFilters(s.db.Model(&models.Book{}), params)
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return nil, 0, err
		}
		total += count

		var books []models.Book
		if err := query.Order("created_at DESC").Limit(fetchLimit).Find(&books).Error; err != nil {
			return nil, 0, err
		}
		for i := range books {
			items = append(items, CatalogItemFromBook(&books[i]))
		}
	}

	if includeLibrary {
		query := s.applyFilters(s.db.Model(&models.LibraryBook{}), params)
		// Orderability is a SQL predicate so count and rows come from the
		// same filtered set. Regular books are always orderable, so only the
		// library query needs it.
		if params.OrderableOnly {
			query = query.Where("availability_status = ?", models.AvailabilityAvailable)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return nil, 0, err
		}
		total += count

		var books []models.LibraryBook
		if err := query.Order("created_at DESC").Limit(fetchLimit).Find(&books).Error; err != nil {
			return nil, 0, err
		}
		for i := range books {
			items = append(items, CatalogItemFromLibraryBook(&books[i]))
		}
	}

	return mergePage(items, params.Page, params.Limit), total, nil
}

// mergePage orders the combined item set newest-first and slices out the
// requested page. Pages past the end come back empty, never an error.
func mergePage(items []CatalogItem, page, limit int) []CatalogItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	offset := (page - 1) * limit
	if offset >= len(items) {
		return []CatalogItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (s *CatalogService) applyFilters(query *gorm.DB, params CatalogSearchParams) *gorm.DB {
	if params.BookstoreID != nil {
		query = query.Where("bookstore_id = ?", *params.BookstoreID)
	}
	if params.Status != nil {
		query = query.Where("availability_status = ?", *params.Status)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR author ILIKE ?", searchTerm, searchTerm)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	return query
}

// GetItem resolves one catalog item by its tagged reference.
func (s *CatalogService) GetItem(ref models.ItemRef) (*CatalogItem, error) {
	switch ref.Kind {
	case models.ItemKindLibrary:
		book, err := s.libraryBooks.GetByID(nil, ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("library book %d not found", ref.ID)
			}
			return nil, err
		}
		item := CatalogItemFromLibraryBook(book)
		return &item, nil
	default:
		book, err := s.books.GetByID(nil, ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("book %d not found", ref.ID)
			}
			return nil, err
		}
		item := CatalogItemFromBook(book)
		return &item, nil
	}
}

// CreateBook lists a regular book under the requester's bookstore.
func (s *CatalogService) CreateBook(ownerID uuid.UUID, req *CreateBookRequest) (*CatalogItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "invalid book")
	}

	store, err := s.resolveStore(ownerID)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		BookstoreID: &store.ID,
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Tags:        req.Tags,

		AvailabilityStatus: models.AvailabilityAvailable,
	}
	if err := s.books.Create(nil, book); err != nil {
		return nil, err
	}

	item := CatalogItemFromBook(book)
	return &item, nil
}

// CreateMarketplaceBook lists a book with no owning storefront (admin path).
func (s *CatalogService) CreateMarketplaceBook(req *CreateBookRequest) (*CatalogItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "invalid book")
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Tags:        req.Tags,

		AvailabilityStatus: models.AvailabilityAvailable,
	}
	if err := s.books.Create(nil, book); err != nil {
		return nil, err
	}

	item := CatalogItemFromBook(book)
	return &item, nil
}

// CreateLibraryBook adds bookstore-supplied stock to the requester's store.
func (s *CatalogService) CreateLibraryBook(ownerID uuid.UUID, req *CreateLibraryBookRequest) (*CatalogItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "invalid library book")
	}

	store, err := s.resolveStore(ownerID)
	if err != nil {
		return nil, err
	}

	condition := req.Condition
	if condition == "" {
		condition = models.BookConditionNew
	}

	book := &models.LibraryBook{
		BookstoreID: store.ID,
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       req.Price,
		Condition:   condition,

		AvailabilityStatus: models.AvailabilityAvailable,
	}
	if err := s.libraryBooks.Create(nil, book); err != nil {
		return nil, err
	}

	item := CatalogItemFromLibraryBook(book)
	return &item, nil
}

// DeleteItem removes a catalog listing outright. Orders keep their own
// snapshots, so the row can go away without breaking history.
func (s *CatalogService) DeleteItem(ref models.ItemRef, requesterID uuid.UUID) error {
	store, err := s.resolveStore(requesterID)
	if err != nil {
		return err
	}

	switch ref.Kind {
	case models.ItemKindLibrary:
		book, err := s.libraryBooks.GetByID(nil, ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("library book %d not found", ref.ID)
			}
			return err
		}
		if book.BookstoreID != store.ID {
			return apperrors.Authorization("bookstore does not own this item")
		}
		return s.libraryBooks.Delete(nil, ref.ID)
	default:
		book, err := s.books.GetByID(nil, ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("book %d not found", ref.ID)
			}
			return err
		}
		if book.BookstoreID == nil || *book.BookstoreID != store.ID {
			return apperrors.Authorization("bookstore does not own this item")
		}
		return s.books.Delete(nil, ref.ID)
	}
}

func (s *CatalogService) resolveStore(ownerID uuid.UUID) (*models.Bookstore, error) {
	store, err := s.bookstores.GetByOwner(nil, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Authorization("user does not own a bookstore")
		}
		return nil, err
	}
	return store, nil
}
