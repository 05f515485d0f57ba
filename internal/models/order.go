// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID     uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Status OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Total  float64     `json:"total" gorm:"type:decimal(10,2);not null"`

	PaymentIntentID string `json:"payment_intent_id,omitempty" gorm:"size:255"`
	ShippingInfo    JSONB  `json:"shipping_info,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User        `json:"-" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots title and price at purchase time; the catalog row may
// change or disappear afterwards while the order stays intact.
type OrderItem struct {
	ID       uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID  uint     `json:"order_id" gorm:"not null;index"`
	ItemKind ItemKind `json:"item_kind" gorm:"type:varchar(10);not null"`
	ItemID   uint     `json:"item_id" gorm:"not null"`

	BookstoreID *uint   `json:"bookstore_id" gorm:"index"`
	Title       string  `json:"title" gorm:"size:255;not null"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity    int     `json:"quantity" gorm:"not null;default:1"`
}

func (i *OrderItem) Ref() ItemRef {
	return ItemRef{Kind: i.ItemKind, ID: i.ItemID}
}
