// internal/models/wishlist.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type WishlistItem struct {
	ID       uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_item"`
	ItemKind ItemKind  `json:"item_kind" gorm:"type:varchar(10);not null;uniqueIndex:idx_wishlist_user_item"`
	ItemID   uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_wishlist_user_item"`

	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (w *WishlistItem) Ref() ItemRef {
	return ItemRef{Kind: w.ItemKind, ID: w.ItemID}
}
