// internal/repositories/repositories.go
package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookhaven/bookmarket-backend/internal/models"
)

// Each method takes the transaction handle it should run in; passing nil
// falls back to the repository's base connection. Services open transactions
// and thread the tx through so a whole mutation commits or rolls back as one.

type BookRepository interface {
	Create(db *gorm.DB, book *models.Book) error
	GetByID(db *gorm.DB, id uint) (*models.Book, error)
	UpdateAvailability(db *gorm.DB, id uint, status models.AvailabilityStatus) error
	Delete(db *gorm.DB, id uint) error
}

type LibraryBookRepository interface {
	Create(db *gorm.DB, book *models.LibraryBook) error
	GetByID(db *gorm.DB, id uint) (*models.LibraryBook, error)
	UpdateAvailability(db *gorm.DB, id uint, status models.AvailabilityStatus) error
	Delete(db *gorm.DB, id uint) error
}

type BookstoreRepository interface {
	Create(db *gorm.DB, store *models.Bookstore) error
	GetByID(db *gorm.DB, id uint) (*models.Bookstore, error)
	GetByOwner(db *gorm.DB, ownerID uuid.UUID) (*models.Bookstore, error)
	// LockByID takes a FOR UPDATE row lock; concurrent review mutations for
	// the same bookstore serialize on it.
	LockByID(db *gorm.DB, id uint) (*models.Bookstore, error)
	UpdateSummary(db *gorm.DB, id uint, rating float64, totalReviews int64) error
}

type ReviewRepository interface {
	GetByBookstoreAndUser(db *gorm.DB, bookstoreID uint, userID uuid.UUID) (*models.Review, error)
	Create(db *gorm.DB, review *models.Review) error
	Save(db *gorm.DB, review *models.Review) error
	Delete(db *gorm.DB, id uint) error
	// Aggregate re-derives average and count from the current review set.
	// Always a fresh query, never an incremental adjustment.
	Aggregate(db *gorm.DB, bookstoreID uint) (avg float64, count int64, err error)
	Distribution(db *gorm.DB, bookstoreID uint) (map[int]int64, error)
	ListByBookstore(db *gorm.DB, bookstoreID uint, limit, offset int) ([]models.Review, int64, error)
}

type PurchaseRepository interface {
	HasPaidOrderForBookstore(db *gorm.DB, userID uuid.UUID, bookstoreID uint) (bool, error)
}

// concrete implementations

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(db *gorm.DB, book *models.Book) error {
	if db == nil {
		db = r.db
	}
	return db.Create(book).Error
}

func (r *bookRepository) GetByID(db *gorm.DB, id uint) (*models.Book, error) {
	if db == nil {
		db = r.db
	}
	var book models.Book
	if err := db.First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) UpdateAvailability(db *gorm.DB, id uint, status models.AvailabilityStatus) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Book{}).
		Where("id = ?", id).
		Update("availability_status", status).
		Error
}

func (r *bookRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Book{}, "id = ?", id).Error
}

type libraryBookRepository struct {
	db *gorm.DB
}

func NewLibraryBookRepository(db *gorm.DB) LibraryBookRepository {
	return &libraryBookRepository{db: db}
}

func (r *libraryBookRepository) Create(db *gorm.DB, book *models.LibraryBook) error {
	if db == nil {
		db = r.db
	}
	return db.Create(book).Error
}

func (r *libraryBookRepository) GetByID(db *gorm.DB, id uint) (*models.LibraryBook, error) {
	if db == nil {
		db = r.db
	}
	var book models.LibraryBook
	if err := db.First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *libraryBookRepository) UpdateAvailability(db *gorm.DB, id uint, status models.AvailabilityStatus) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.LibraryBook{}).
		Where("id = ?", id).
		Update("availability_status", status).
		Error
}

func (r *libraryBookRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.LibraryBook{}, "id = ?", id).Error
}

type bookstoreRepository struct {
	db *gorm.DB
}

func NewBookstoreRepository(db *gorm.DB) BookstoreRepository {
	return &bookstoreRepository{db: db}
}

func (r *bookstoreRepository) Create(db *gorm.DB, store *models.Bookstore) error {
	if db == nil {
		db = r.db
	}
	return db.Create(store).Error
}

func (r *bookstoreRepository) GetByID(db *gorm.DB, id uint) (*models.Bookstore, error) {
	if db == nil {
		db = r.db
	}
	var store models.Bookstore
	if err := db.First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *bookstoreRepository) GetByOwner(db *gorm.DB, ownerID uuid.UUID) (*models.Bookstore, error) {
	if db == nil {
		db = r.db
	}
	var store models.Bookstore
	if err := db.First(&store, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *bookstoreRepository) LockByID(db *gorm.DB, id uint) (*models.Bookstore, error) {
	if db == nil {
		db = r.db
	}
	var store models.Bookstore
	err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&store, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *bookstoreRepository) UpdateSummary(db *gorm.DB, id uint, rating float64, totalReviews int64) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Bookstore{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": totalReviews,
		}).Error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByBookstoreAndUser(db *gorm.DB, bookstoreID uint, userID uuid.UUID) (*models.Review, error) {
	if db == nil {
		db = r.db
	}
	var review models.Review
	err := db.Where("bookstore_id = ? AND user_id = ?", bookstoreID, userID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	if db == nil {
		db = r.db
	}
	return db.Create(review).Error
}

func (r *reviewRepository) Save(db *gorm.DB, review *models.Review) error {
	if db == nil {
		db = r.db
	}
	return db.Save(review).Error
}

func (r *reviewRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Review{}, "id = ?", id).Error
}

func (r *reviewRepository) Aggregate(db *gorm.DB, bookstoreID uint) (float64, int64, error) {
	if db == nil {
		db = r.db
	}
	var result struct {
		Avg   float64
		Count int64
	}
	err := db.Model(&models.Review{}).
		Where("bookstore_id = ?", bookstoreID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}

func (r *reviewRepository) Distribution(db *gorm.DB, bookstoreID uint) (map[int]int64, error) {
	if db == nil {
		db = r.db
	}
	var rows []struct {
		Rating int
		Count  int64
	}
	err := db.Model(&models.Review{}).
		Where("bookstore_id = ?", bookstoreID).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := make(map[int]int64, len(rows))
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}
	return dist, nil
}

func (r *reviewRepository) ListByBookstore(db *gorm.DB, bookstoreID uint, limit, offset int) ([]models.Review, int64, error) {
	if db == nil {
		db = r.db
	}
	var total int64
	if err := db.Model(&models.Review{}).Where("bookstore_id = ?", bookstoreID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := db.Where("bookstore_id = ?", bookstoreID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) HasPaidOrderForBookstore(db *gorm.DB, userID uuid.UUID, bookstoreID uint) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.bookstore_id = ?",
			userID, models.OrderStatusPaid, bookstoreID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
