// internal/models/book.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// Book is a marketplace catalog entry. BookstoreID is nullable: books not
// tied to a storefront are marketplace-owned. Rows are removed outright on
// delete; there is no soft-delete state for catalog listings.
type Book struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	BookstoreID *uint          `json:"bookstore_id" gorm:"index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Author      string         `json:"author" gorm:"size:255;not null"`
	ISBN        string         `json:"isbn" gorm:"size:20;index"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`

	AvailabilityStatus AvailabilityStatus `json:"availability_status" gorm:"type:varchar(20);not null;default:'available';index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bookstore *Bookstore `json:"bookstore,omitempty" gorm:"foreignKey:BookstoreID"`
}

// Orderable is always true for regular books. Listing a book means it can be
// ordered; there is deliberately no stock counter to gate on.
func (b *Book) Orderable() bool {
	return true
}

func (b *Book) Ref() ItemRef {
	return ItemRef{Kind: ItemKindRegular, ID: b.ID}
}

// LibraryBook is a bookstore-supplied catalog entry with its own id space.
type LibraryBook struct {
	ID          uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	BookstoreID uint          `json:"bookstore_id" gorm:"not null;index"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	Author      string        `json:"author" gorm:"size:255;not null"`
	ISBN        string        `json:"isbn" gorm:"size:20;index"`
	Description string        `json:"description" gorm:"type:text"`
	Price       float64       `json:"price" gorm:"type:decimal(10,2);not null"`
	Condition   BookCondition `json:"condition" gorm:"type:varchar(10);default:'new'"`

	AvailabilityStatus AvailabilityStatus `json:"availability_status" gorm:"type:varchar(20);not null;default:'available';index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bookstore Bookstore `json:"bookstore,omitempty" gorm:"foreignKey:BookstoreID;constraint:OnDelete:CASCADE"`
}

// Orderable gates library books on availability alone.
func (b *LibraryBook) Orderable() bool {
	return b.AvailabilityStatus == AvailabilityAvailable
}

func (b *LibraryBook) Ref() ItemRef {
	return ItemRef{Kind: ItemKindLibrary, ID: b.ID}
}

// IsOrderable applies the orderability rule for a (kind, status) pair without
// needing the full row. Regular books are orderable regardless of status.
func IsOrderable(kind ItemKind, status AvailabilityStatus) bool {
	if kind == ItemKindLibrary {
		return status == AvailabilityAvailable
	}
	return true
}
