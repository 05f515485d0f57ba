// internal/models/review.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's rating of one bookstore. The unique index on
// (bookstore_id, user_id) makes resubmission an update, never a second row.
// Reviews are hard-deleted so the aggregate count always matches the table.
type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	BookstoreID uint      `json:"bookstore_id" gorm:"not null;uniqueIndex:idx_reviews_bookstore_user"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_bookstore_user"`
	Rating      int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title       string    `json:"title" gorm:"size:255"`
	Text        string    `json:"text" gorm:"type:text"`

	IsVerifiedPurchase bool `json:"is_verified_purchase" gorm:"not null;default:false"`
	HelpfulCount       int  `json:"helpful_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bookstore Bookstore `json:"-" gorm:"foreignKey:BookstoreID;constraint:OnDelete:CASCADE"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
