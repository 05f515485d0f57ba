// internal/services/availability_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
)

type availabilityFixture struct {
	svc          *AvailabilityService
	stores       *fakeBookstoreRepo
	books        *fakeBookRepo
	libraryBooks *fakeLibraryBookRepo

	ownerID      uuid.UUID
	otherOwnerID uuid.UUID
	storeID      uint
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()

	stores := newFakeBookstoreRepo()
	books := newFakeBookRepo()
	libraryBooks := newFakeLibraryBookRepo()

	ownerID := uuid.New()
	otherOwnerID := uuid.New()

	stores.add(&models.Bookstore{ID: 1, OwnerID: ownerID, Name: "Dusty Pages"})
	stores.add(&models.Bookstore{ID: 2, OwnerID: otherOwnerID, Name: "Rival Reads"})

	return &availabilityFixture{
		svc:          NewAvailabilityService(fakeTransactor{}, stores, books, libraryBooks),
		stores:       stores,
		books:        books,
		libraryBooks: libraryBooks,
		ownerID:      ownerID,
		otherOwnerID: otherOwnerID,
		storeID:      1,
	}
}

func (f *availabilityFixture) addBook(id uint, storeID *uint) *models.Book {
	return f.books.add(&models.Book{
		ID:                 id,
		BookstoreID:        storeID,
		Title:              "The Go Programming Language",
		AvailabilityStatus: models.AvailabilityAvailable,
	})
}

func (f *availabilityFixture) addLibraryBook(id, storeID uint) *models.LibraryBook {
	return f.libraryBooks.add(&models.LibraryBook{
		ID:                 id,
		BookstoreID:        storeID,
		Title:              "A Wrinkle in Time",
		AvailabilityStatus: models.AvailabilityAvailable,
	})
}

func TestSetAvailabilityRejectsUnknownStatus(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.addBook(1, &f.storeID)

	for _, status := range []models.AvailabilityStatus{"", "Available", "sold_out", "COMING_SOON"} {
		_, err := f.svc.SetAvailability(
			models.ItemRef{Kind: models.ItemKindRegular, ID: 1},
			f.ownerID,
			status,
		)
		assert.True(t, apperrors.IsValidation(err), "status %q", status)
	}

	// Row untouched after rejected writes.
	book, err := f.books.GetByID(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityAvailable, book.AvailabilityStatus)
}

func TestSetAvailabilityUnknownItem(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindRegular, ID: 42},
		f.ownerID,
		models.AvailabilityUnavailable,
	)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindLibrary, ID: 42},
		f.ownerID,
		models.AvailabilityUnavailable,
	)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSetAvailabilityRequiresOwnership(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.addBook(1, &f.storeID)
	f.addLibraryBook(1, f.storeID)

	// A different store's owner cannot touch this item.
	_, err := f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindRegular, ID: 1},
		f.otherOwnerID,
		models.AvailabilityUnavailable,
	)
	assert.True(t, apperrors.IsAuthorization(err))

	_, err = f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindLibrary, ID: 1},
		f.otherOwnerID,
		models.AvailabilityUnavailable,
	)
	assert.True(t, apperrors.IsAuthorization(err))

	// A user with no store at all is refused too.
	_, err = f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindRegular, ID: 1},
		uuid.New(),
		models.AvailabilityUnavailable,
	)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestSetAvailabilityMarketplaceBookHasNoOwner(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.addBook(1, nil)

	_, err := f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindRegular, ID: 1},
		f.ownerID,
		models.AvailabilityUnavailable,
	)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestSetAvailabilityUpdatesBook(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.addBook(7, &f.storeID)

	item, err := f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindRegular, ID: 7},
		f.ownerID,
		models.AvailabilityComingSoon,
	)
	require.NoError(t, err)

	assert.Equal(t, "7", item.ID)
	assert.Equal(t, models.ItemKindRegular, item.Kind)
	assert.Equal(t, models.AvailabilityComingSoon, item.AvailabilityStatus)
	// Regular books stay orderable regardless of status.
	assert.True(t, item.Orderable)

	book, err := f.books.GetByID(nil, 7)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityComingSoon, book.AvailabilityStatus)
}

func TestSetAvailabilityUpdatesLibraryBook(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.addLibraryBook(7, f.storeID)

	item, err := f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindLibrary, ID: 7},
		f.ownerID,
		models.AvailabilityUnavailable,
	)
	require.NoError(t, err)

	assert.Equal(t, "library-7", item.ID)
	assert.Equal(t, models.ItemKindLibrary, item.Kind)
	assert.Equal(t, models.AvailabilityUnavailable, item.AvailabilityStatus)
	assert.False(t, item.Orderable)

	book, err := f.libraryBooks.GetByID(nil, 7)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityUnavailable, book.AvailabilityStatus)
}

// Every status can move to every other status, including itself. There is no
// transition graph beyond the vocabulary itself.
func TestSetAvailabilityAllTransitionsAllowed(t *testing.T) {
	f := newAvailabilityFixture(t)
	book := f.addLibraryBook(1, f.storeID)

	statuses := []models.AvailabilityStatus{
		models.AvailabilityAvailable,
		models.AvailabilityUnavailable,
		models.AvailabilityComingSoon,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			book.AvailabilityStatus = from

			item, err := f.svc.SetAvailability(
				models.ItemRef{Kind: models.ItemKindLibrary, ID: 1},
				f.ownerID,
				to,
			)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, item.AvailabilityStatus)
		}
	}
}

// Namespaced ids resolve to a different row than bare ids of the same number.
func TestSetAvailabilityKindsAreIndependent(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.addBook(3, &f.storeID)
	f.addLibraryBook(3, f.storeID)

	_, err := f.svc.SetAvailability(
		models.ItemRef{Kind: models.ItemKindLibrary, ID: 3},
		f.ownerID,
		models.AvailabilityComingSoon,
	)
	require.NoError(t, err)

	book, err := f.books.GetByID(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityAvailable, book.AvailabilityStatus)

	libraryBook, err := f.libraryBooks.GetByID(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityComingSoon, libraryBook.AvailabilityStatus)
}
