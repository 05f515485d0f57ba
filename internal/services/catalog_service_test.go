// internal/services/catalog_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bookhaven/bookmarket-backend/internal/models"
)

func TestCatalogItemFromBook(t *testing.T) {
	storeID := uint(4)
	book := &models.Book{
		ID:                 9,
		BookstoreID:        &storeID,
		Title:              "The Go Programming Language",
		Author:             "Donovan & Kernighan",
		Price:              39.99,
		AvailabilityStatus: models.AvailabilityUnavailable,
	}

	item := CatalogItemFromBook(book)
	assert.Equal(t, "9", item.ID)
	assert.Equal(t, models.ItemKindRegular, item.Kind)
	assert.Equal(t, &storeID, item.BookstoreID)
	// Status never gates regular books.
	assert.True(t, item.Orderable)
}

func TestCatalogItemFromLibraryBook(t *testing.T) {
	book := &models.LibraryBook{
		ID:                 9,
		BookstoreID:        4,
		Title:              "A Wrinkle in Time",
		Condition:          models.BookConditionUsed,
		AvailabilityStatus: models.AvailabilityComingSoon,
	}

	item := CatalogItemFromLibraryBook(book)
	assert.Equal(t, "library-9", item.ID)
	assert.Equal(t, models.ItemKindLibrary, item.Kind)
	assert.Equal(t, uint(4), *item.BookstoreID)
	assert.False(t, item.Orderable)

	book.AvailabilityStatus = models.AvailabilityAvailable
	assert.True(t, CatalogItemFromLibraryBook(book).Orderable)
}

func TestMergePage(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var items []CatalogItem
	for i := 0; i < 5; i++ {
		items = append(items, CatalogItem{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	// Newest first across the merged set.
	page := mergePage(items, 1, 2)
	assert.Equal(t, []string{"e", "d"}, []string{page[0].ID, page[1].ID})

	page = mergePage(items, 2, 2)
	assert.Equal(t, []string{"c", "b"}, []string{page[0].ID, page[1].ID})

	// Last, short page.
	page = mergePage(items, 3, 2)
	assert.Len(t, page, 1)
	assert.Equal(t, "a", page[0].ID)

	// Past the end: empty, not an error.
	assert.Empty(t, mergePage(items, 4, 2))
	assert.Empty(t, mergePage(nil, 1, 20))
}
