// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem references a catalog item of either kind by its tagged id.
type CartItem struct {
	ID       uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_item"`
	ItemKind ItemKind  `json:"item_kind" gorm:"type:varchar(10);not null;uniqueIndex:idx_cart_user_item"`
	ItemID   uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	Quantity int       `json:"quantity" gorm:"not null;default:1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (c *CartItem) Ref() ItemRef {
	return ItemRef{Kind: c.ItemKind, ID: c.ItemID}
}
