// internal/models/bookstore.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Bookstore is a seller storefront. Rating and TotalReviews are derived
// summary fields owned by the review aggregation; they are never written by
// request payloads, only recomputed inside the same transaction as a review
// mutation.
type Bookstore struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Address     string    `json:"address" gorm:"size:255"`
	Phone       string    `json:"phone" gorm:"size:30"`

	Rating       float64 `json:"rating" gorm:"type:decimal(3,2);not null;default:0"`
	TotalReviews int64   `json:"total_reviews" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Owner        User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Books        []Book        `json:"books,omitempty" gorm:"foreignKey:BookstoreID"`
	LibraryBooks []LibraryBook `json:"library_books,omitempty" gorm:"foreignKey:BookstoreID;constraint:OnDelete:CASCADE"`
	Reviews      []Review      `json:"reviews,omitempty" gorm:"foreignKey:BookstoreID;constraint:OnDelete:CASCADE"`
}
