// internal/services/review_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
)

type reviewFixture struct {
	svc       *ReviewService
	stores    *fakeBookstoreRepo
	reviews   *fakeReviewRepo
	purchases *fakePurchaseRepo
	storeID   uint
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	stores := newFakeBookstoreRepo()
	reviews := newFakeReviewRepo()
	purchases := newFakePurchaseRepo()

	store := stores.add(&models.Bookstore{
		ID:      1,
		OwnerID: uuid.New(),
		Name:    "Dusty Pages",
	})

	return &reviewFixture{
		svc:       NewReviewService(fakeTransactor{}, stores, reviews, purchases),
		stores:    stores,
		reviews:   reviews,
		purchases: purchases,
		storeID:   store.ID,
	}
}

func (f *reviewFixture) summary(t *testing.T) (float64, int64) {
	t.Helper()
	store, err := f.stores.GetByID(nil, f.storeID)
	require.NoError(t, err)
	return store.Rating, store.TotalReviews
}

func TestSubmitReviewFirstReview(t *testing.T) {
	f := newReviewFixture(t)
	user := uuid.New()

	review, err := f.svc.SubmitReview(f.storeID, user, &SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.False(t, review.IsVerifiedPurchase)

	rating, total := f.summary(t)
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, int64(1), total)
}

func TestSubmitReviewResubmissionReplacesRating(t *testing.T) {
	f := newReviewFixture(t)
	user := uuid.New()

	_, err := f.svc.SubmitReview(f.storeID, user, &SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)

	// Same user again: update in place, not a second row.
	_, err = f.svc.SubmitReview(f.storeID, user, &SubmitReviewRequest{Rating: 3, Text: "changed my mind"})
	require.NoError(t, err)

	rating, total := f.summary(t)
	assert.Equal(t, 3.0, rating)
	assert.Equal(t, int64(1), total)

	row, err := f.reviews.GetByBookstoreAndUser(nil, f.storeID, user)
	require.NoError(t, err)
	assert.Equal(t, 3, row.Rating)
	assert.Equal(t, "changed my mind", row.Text)
}

func TestSubmitReviewAveragesAcrossUsers(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{5, 3, 4} {
		_, err := f.svc.SubmitReview(f.storeID, uuid.New(), &SubmitReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	rating, total := f.summary(t)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, int64(3), total)
}

func TestSubmitReviewRoundsToTwoDigits(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{5, 4, 4} {
		_, err := f.svc.SubmitReview(f.storeID, uuid.New(), &SubmitReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	// 13/3 = 4.333...
	rating, total := f.summary(t)
	assert.Equal(t, 4.33, rating)
	assert.Equal(t, int64(3), total)
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := f.svc.SubmitReview(f.storeID, uuid.New(), &SubmitReviewRequest{Rating: rating})
		assert.True(t, apperrors.IsValidation(err), "rating %d", rating)
	}

	_, total := f.summary(t)
	assert.Equal(t, int64(0), total)
}

func TestSubmitReviewRejectsOverlongTitle(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.SubmitReview(f.storeID, uuid.New(), &SubmitReviewRequest{
		Rating: 4,
		Title:  strings.Repeat("a", 256),
	})
	assert.True(t, apperrors.IsValidation(err))

	_, total := f.summary(t)
	assert.Equal(t, int64(0), total)
}

// blindReviewRepo never sees existing rows on lookup, so two submissions that
// both pass the existence check land on the unique index.
type blindReviewRepo struct {
	*fakeReviewRepo
}

func (r *blindReviewRepo) GetByBookstoreAndUser(_ *gorm.DB, _ uint, _ uuid.UUID) (*models.Review, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestSubmitReviewLostRaceSurfacesConflict(t *testing.T) {
	f := newReviewFixture(t)
	user := uuid.New()

	reviews := &blindReviewRepo{f.reviews}
	svc := NewReviewService(fakeTransactor{}, f.stores, reviews, f.purchases)

	_, err := svc.SubmitReview(f.storeID, user, &SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)

	// The second insert for the same (bookstore, user) hits the unique
	// index, the way a concurrent first submission would.
	_, err = svc.SubmitReview(f.storeID, user, &SubmitReviewRequest{Rating: 3})
	assert.True(t, apperrors.IsConflict(err))
}

func TestSubmitReviewUnknownBookstore(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.SubmitReview(999, uuid.New(), &SubmitReviewRequest{Rating: 4})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSubmitReviewMarksVerifiedPurchase(t *testing.T) {
	f := newReviewFixture(t)
	user := uuid.New()
	f.purchases.markPaid(user, f.storeID)

	review, err := f.svc.SubmitReview(f.storeID, user, &SubmitReviewRequest{Rating: 4})
	require.NoError(t, err)
	assert.True(t, review.IsVerifiedPurchase)
}

func TestDeleteReviewRecomputesSummary(t *testing.T) {
	f := newReviewFixture(t)
	first := uuid.New()

	_, err := f.svc.SubmitReview(f.storeID, first, &SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)
	for _, rating := range []int{3, 4} {
		_, err := f.svc.SubmitReview(f.storeID, uuid.New(), &SubmitReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.DeleteReview(f.storeID, first))

	rating, total := f.summary(t)
	assert.Equal(t, 3.5, rating)
	assert.Equal(t, int64(2), total)
}

func TestDeleteLastReviewZeroesSummary(t *testing.T) {
	f := newReviewFixture(t)
	user := uuid.New()

	_, err := f.svc.SubmitReview(f.storeID, user, &SubmitReviewRequest{Rating: 2})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReview(f.storeID, user))

	// Empty review set means 0.00 / 0, never null or leftover values.
	rating, total := f.summary(t)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, int64(0), total)
}

func TestDeleteReviewMissing(t *testing.T) {
	f := newReviewFixture(t)

	err := f.svc.DeleteReview(f.storeID, uuid.New())
	assert.True(t, apperrors.IsNotFound(err))

	err = f.svc.DeleteReview(999, uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetStatsHistogramZeroFilled(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{5, 5, 3} {
		_, err := f.svc.SubmitReview(f.storeID, uuid.New(), &SubmitReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	stats, err := f.svc.GetStats(f.storeID)
	require.NoError(t, err)

	assert.Equal(t, 4.33, stats.Bookstore.Rating)
	assert.Equal(t, int64(3), stats.Bookstore.TotalReviews)

	// All five buckets present, absent ratings zero-filled.
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 1, 4: 0, 5: 2}, stats.Distribution)
}

func TestGetStatsEmptyBookstore(t *testing.T) {
	f := newReviewFixture(t)

	stats, err := f.svc.GetStats(f.storeID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.Bookstore.Rating)
	assert.Equal(t, int64(0), stats.Bookstore.TotalReviews)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution)
}

func TestGetStatsUnknownBookstore(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.GetStats(999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.33, RoundRating(13.0/3.0))
	assert.Equal(t, 3.67, RoundRating(11.0/3.0))
	assert.Equal(t, 4.0, RoundRating(4.0))
	assert.Equal(t, 0.0, RoundRating(0))
	assert.Equal(t, 2.5, RoundRating(5.0/2.0))
}
