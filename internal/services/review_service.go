// internal/services/review_service.go
package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
	"github.com/bookhaven/bookmarket-backend/internal/repositories"
	"github.com/bookhaven/bookmarket-backend/internal/utils"
)

// ReviewService owns the rating aggregation: every review mutation locks the
// bookstore row, applies the change, and re-derives (rating, total_reviews)
// from a fresh aggregate query before the transaction commits. The summary
// is never observably stale relative to committed review rows, and it is
// never adjusted incrementally — two concurrent submissions adjusting a
// running average would race without extra locking.
type ReviewService struct {
	db         Transactor
	bookstores repositories.BookstoreRepository
	reviews    repositories.ReviewRepository
	purchases  repositories.PurchaseRepository
}

type SubmitReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Title  string `json:"title,omitempty" validate:"omitempty,max=255"`
	Text   string `json:"text,omitempty"`
}

type RatingSummary struct {
	Rating       float64 `json:"rating"`
	TotalReviews int64   `json:"total_reviews"`
}

type BookstoreStats struct {
	Bookstore    RatingSummary `json:"bookstore"`
	Distribution map[int]int64 `json:"distribution"`
}

func NewReviewService(
	db Transactor,
	bookstores repositories.BookstoreRepository,
	reviews repositories.ReviewRepository,
	purchases repositories.PurchaseRepository,
) *ReviewService {
	return &ReviewService{
		db:         db,
		bookstores: bookstores,
		reviews:    reviews,
		purchases:  purchases,
	}
}

// SubmitReview creates or updates the caller's review of a bookstore. A
// repeat submission by the same user updates the existing row in place, so
// the (bookstore, user) pair never produces a second review.
func (s *ReviewService) SubmitReview(bookstoreID uint, userID uuid.UUID, req *SubmitReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5, got %d", req.Rating)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "invalid review")
	}

	var review *models.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		store, err := s.bookstores.LockByID(tx, bookstoreID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("bookstore %d not found", bookstoreID)
			}
			return err
		}

		existing, err := s.reviews.GetByBookstoreAndUser(tx, bookstoreID, userID)
		switch {
		case err == nil:
			existing.Rating = req.Rating
			existing.Title = req.Title
			existing.Text = req.Text
			if err := s.reviews.Save(tx, existing); err != nil {
				return err
			}
			review = existing

		case errors.Is(err, gorm.ErrRecordNotFound):
			verified, err := s.purchases.HasPaidOrderForBookstore(tx, userID, bookstoreID)
			if err != nil {
				return err
			}
			review = &models.Review{
				BookstoreID:        bookstoreID,
				UserID:             userID,
				Rating:             req.Rating,
				Title:              req.Title,
				Text:               req.Text,
				IsVerifiedPurchase: verified,
			}
			if err := s.reviews.Create(tx, review); err != nil {
				if isUniqueViolation(err) {
					return apperrors.Wrap(apperrors.KindConflict, err, "concurrent review submission for bookstore %d", bookstoreID)
				}
				return err
			}

		default:
			return err
		}

		return s.recomputeSummary(tx, store.ID)
	})

	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"bookstore_id": bookstoreID,
		"user_id":      userID,
		"rating":       review.Rating,
	}).Info("Review submitted")

	return review, nil
}

// DeleteReview removes the caller's review and recomputes the summary in the
// same transaction. Deleting the last review leaves 0.00 / 0, never null.
func (s *ReviewService) DeleteReview(bookstoreID uint, userID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		store, err := s.bookstores.LockByID(tx, bookstoreID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("bookstore %d not found", bookstoreID)
			}
			return err
		}

		review, err := s.reviews.GetByBookstoreAndUser(tx, bookstoreID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("no review by this user for bookstore %d", bookstoreID)
			}
			return err
		}

		if err := s.reviews.Delete(tx, review.ID); err != nil {
			return err
		}

		return s.recomputeSummary(tx, store.ID)
	})

	if err == nil {
		logrus.WithFields(logrus.Fields{
			"bookstore_id": bookstoreID,
			"user_id":      userID,
		}).Info("Review deleted")
	}
	return err
}

// GetStats returns the denormalized summary together with a histogram over
// the five rating values. All five buckets are present, zero-filled.
func (s *ReviewService) GetStats(bookstoreID uint) (*BookstoreStats, error) {
	store, err := s.bookstores.GetByID(nil, bookstoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("bookstore %d not found", bookstoreID)
		}
		return nil, err
	}

	dist, err := s.reviews.Distribution(nil, bookstoreID)
	if err != nil {
		return nil, err
	}

	filled := make(map[int]int64, 5)
	for rating := 1; rating <= 5; rating++ {
		filled[rating] = dist[rating]
	}

	return &BookstoreStats{
		Bookstore: RatingSummary{
			Rating:       store.Rating,
			TotalReviews: store.TotalReviews,
		},
		Distribution: filled,
	}, nil
}

// ListReviews returns a page of a bookstore's reviews, newest first.
func (s *ReviewService) ListReviews(bookstoreID uint, limit, offset int) ([]models.Review, int64, error) {
	if _, err := s.bookstores.GetByID(nil, bookstoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("bookstore %d not found", bookstoreID)
		}
		return nil, 0, err
	}
	return s.reviews.ListByBookstore(nil, bookstoreID, limit, offset)
}

func (s *ReviewService) recomputeSummary(tx *gorm.DB, bookstoreID uint) error {
	avg, count, err := s.reviews.Aggregate(tx, bookstoreID)
	if err != nil {
		return err
	}
	return s.bookstores.UpdateSummary(tx, bookstoreID, RoundRating(avg), count)
}

// RoundRating rounds an average to two fraction digits, the precision of the
// persisted summary column.
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
