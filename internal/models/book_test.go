// internal/models/book_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityStatusValid(t *testing.T) {
	assert.True(t, AvailabilityAvailable.Valid())
	assert.True(t, AvailabilityUnavailable.Valid())
	assert.True(t, AvailabilityComingSoon.Valid())

	// Matching is exact and case-sensitive.
	assert.False(t, AvailabilityStatus("").Valid())
	assert.False(t, AvailabilityStatus("Available").Valid())
	assert.False(t, AvailabilityStatus("AVAILABLE").Valid())
	assert.False(t, AvailabilityStatus("coming-soon").Valid())
	assert.False(t, AvailabilityStatus("sold_out").Valid())
}

func TestBookAlwaysOrderable(t *testing.T) {
	for _, status := range []AvailabilityStatus{
		AvailabilityAvailable,
		AvailabilityUnavailable,
		AvailabilityComingSoon,
	} {
		book := Book{AvailabilityStatus: status}
		assert.True(t, book.Orderable(), "status %s", status)
	}
}

func TestLibraryBookOrderableOnlyWhenAvailable(t *testing.T) {
	book := LibraryBook{AvailabilityStatus: AvailabilityAvailable}
	assert.True(t, book.Orderable())

	book.AvailabilityStatus = AvailabilityUnavailable
	assert.False(t, book.Orderable())

	book.AvailabilityStatus = AvailabilityComingSoon
	assert.False(t, book.Orderable())
}

func TestIsOrderable(t *testing.T) {
	tests := []struct {
		kind   ItemKind
		status AvailabilityStatus
		want   bool
	}{
		{ItemKindRegular, AvailabilityAvailable, true},
		{ItemKindRegular, AvailabilityUnavailable, true},
		{ItemKindRegular, AvailabilityComingSoon, true},
		{ItemKindLibrary, AvailabilityAvailable, true},
		{ItemKindLibrary, AvailabilityUnavailable, false},
		{ItemKindLibrary, AvailabilityComingSoon, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOrderable(tt.kind, tt.status), "%s/%s", tt.kind, tt.status)
	}
}

func TestRefs(t *testing.T) {
	book := Book{ID: 9}
	assert.Equal(t, ItemRef{Kind: ItemKindRegular, ID: 9}, book.Ref())

	libraryBook := LibraryBook{ID: 9}
	assert.Equal(t, ItemRef{Kind: ItemKindLibrary, ID: 9}, libraryBook.Ref())
	assert.Equal(t, "library-9", libraryBook.Ref().String())
}
