// internal/services/mocks_test.go
package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/models"
)

// In-memory doubles for the repository interfaces. The transactor just runs
// the function with a nil handle; every repository method treats nil as its
// own store, so service transaction bodies exercise the same code paths they
// would against a live connection.

type fakeTransactor struct{}

func (fakeTransactor) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeBookstoreRepo struct {
	stores map[uint]*models.Bookstore
}

func newFakeBookstoreRepo() *fakeBookstoreRepo {
	return &fakeBookstoreRepo{stores: make(map[uint]*models.Bookstore)}
}

func (r *fakeBookstoreRepo) add(store *models.Bookstore) *models.Bookstore {
	r.stores[store.ID] = store
	return store
}

func (r *fakeBookstoreRepo) Create(_ *gorm.DB, store *models.Bookstore) error {
	store.ID = uint(len(r.stores) + 1)
	r.stores[store.ID] = store
	return nil
}

func (r *fakeBookstoreRepo) GetByID(_ *gorm.DB, id uint) (*models.Bookstore, error) {
	store, ok := r.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func (r *fakeBookstoreRepo) GetByOwner(_ *gorm.DB, ownerID uuid.UUID) (*models.Bookstore, error) {
	for _, store := range r.stores {
		if store.OwnerID == ownerID {
			return store, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBookstoreRepo) LockByID(db *gorm.DB, id uint) (*models.Bookstore, error) {
	return r.GetByID(db, id)
}

func (r *fakeBookstoreRepo) UpdateSummary(_ *gorm.DB, id uint, rating float64, totalReviews int64) error {
	store, ok := r.stores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	store.Rating = rating
	store.TotalReviews = totalReviews
	return nil
}

type fakeBookRepo struct {
	books map[uint]*models.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uint]*models.Book)}
}

func (r *fakeBookRepo) add(book *models.Book) *models.Book {
	r.books[book.ID] = book
	return book
}

func (r *fakeBookRepo) Create(_ *gorm.DB, book *models.Book) error {
	book.ID = uint(len(r.books) + 1)
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) GetByID(_ *gorm.DB, id uint) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func (r *fakeBookRepo) UpdateAvailability(_ *gorm.DB, id uint, status models.AvailabilityStatus) error {
	book, ok := r.books[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	book.AvailabilityStatus = status
	return nil
}

func (r *fakeBookRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.books, id)
	return nil
}

type fakeLibraryBookRepo struct {
	books map[uint]*models.LibraryBook
}

func newFakeLibraryBookRepo() *fakeLibraryBookRepo {
	return &fakeLibraryBookRepo{books: make(map[uint]*models.LibraryBook)}
}

func (r *fakeLibraryBookRepo) add(book *models.LibraryBook) *models.LibraryBook {
	r.books[book.ID] = book
	return book
}

func (r *fakeLibraryBookRepo) Create(_ *gorm.DB, book *models.LibraryBook) error {
	book.ID = uint(len(r.books) + 1)
	r.books[book.ID] = book
	return nil
}

func (r *fakeLibraryBookRepo) GetByID(_ *gorm.DB, id uint) (*models.LibraryBook, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func (r *fakeLibraryBookRepo) UpdateAvailability(_ *gorm.DB, id uint, status models.AvailabilityStatus) error {
	book, ok := r.books[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	book.AvailabilityStatus = status
	return nil
}

func (r *fakeLibraryBookRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.books, id)
	return nil
}

type fakeReviewRepo struct {
	rows   map[uint]*models.Review
	nextID uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{rows: make(map[uint]*models.Review), nextID: 1}
}

func (r *fakeReviewRepo) GetByBookstoreAndUser(_ *gorm.DB, bookstoreID uint, userID uuid.UUID) (*models.Review, error) {
	for _, row := range r.rows {
		if row.BookstoreID == bookstoreID && row.UserID == userID {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) Create(_ *gorm.DB, review *models.Review) error {
	for _, row := range r.rows {
		if row.BookstoreID == review.BookstoreID && row.UserID == review.UserID {
			return errors.New("duplicate key value violates unique constraint \"idx_reviews_bookstore_user\"")
		}
	}
	review.ID = r.nextID
	r.nextID++
	r.rows[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Save(_ *gorm.DB, review *models.Review) error {
	r.rows[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeReviewRepo) Aggregate(_ *gorm.DB, bookstoreID uint) (float64, int64, error) {
	var sum int
	var count int64
	for _, row := range r.rows {
		if row.BookstoreID == bookstoreID {
			sum += row.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (r *fakeReviewRepo) Distribution(_ *gorm.DB, bookstoreID uint) (map[int]int64, error) {
	dist := make(map[int]int64)
	for _, row := range r.rows {
		if row.BookstoreID == bookstoreID {
			dist[row.Rating]++
		}
	}
	return dist, nil
}

func (r *fakeReviewRepo) ListByBookstore(_ *gorm.DB, bookstoreID uint, limit, offset int) ([]models.Review, int64, error) {
	var reviews []models.Review
	for _, row := range r.rows {
		if row.BookstoreID == bookstoreID {
			reviews = append(reviews, *row)
		}
	}
	return reviews, int64(len(reviews)), nil
}

type fakePurchaseRepo struct {
	paid map[uuid.UUID]map[uint]bool
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{paid: make(map[uuid.UUID]map[uint]bool)}
}

func (r *fakePurchaseRepo) markPaid(userID uuid.UUID, bookstoreID uint) {
	if r.paid[userID] == nil {
		r.paid[userID] = make(map[uint]bool)
	}
	r.paid[userID][bookstoreID] = true
}

func (r *fakePurchaseRepo) HasPaidOrderForBookstore(_ *gorm.DB, userID uuid.UUID, bookstoreID uint) (bool, error) {
	return r.paid[userID][bookstoreID], nil
}
