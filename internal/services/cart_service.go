// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
)

type CartService struct {
	db      *gorm.DB
	catalog *CatalogService
}

// CartLine pairs a cart row with the current catalog view of its item, so
// clients see today's price and availability rather than a stale copy.
type CartLine struct {
	ID       uint        `json:"id"`
	Quantity int         `json:"quantity"`
	Item     CatalogItem `json:"item"`
}

type AddToCartRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

func NewCartService(db *gorm.DB, catalog *CatalogService) *CartService {
	return &CartService{
		db:      db,
		catalog: catalog,
	}
}

// AddItem puts a catalog item in the user's cart; adding the same item again
// bumps the quantity on the existing row.
func (s *CartService) AddItem(userID uuid.UUID, ref models.ItemRef, quantity int) (*CartLine, error) {
	if quantity <= 0 {
		quantity = 1
	}

	item, err := s.catalog.GetItem(ref)
	if err != nil {
		return nil, err
	}
	if !item.Orderable {
		return nil, apperrors.Validation("item %s is not orderable", ref.String())
	}

	var row models.CartItem
	err = s.db.Where("user_id = ? AND item_kind = ? AND item_id = ?", userID, ref.Kind, ref.ID).
		First(&row).Error
	switch {
	case err == nil:
		row.Quantity += quantity
		if err := s.db.Save(&row).Error; err != nil {
			return nil, err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.CartItem{
			UserID:   userID,
			ItemKind: ref.Kind,
			ItemID:   ref.ID,
			Quantity: quantity,
		}
		if err := s.db.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, apperrors.Wrap(apperrors.KindConflict, err, "item already in cart")
			}
			return nil, err
		}

	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &CartLine{ID: row.ID, Quantity: row.Quantity, Item: *item}, nil
}

func (s *CartService) UpdateQuantity(userID uuid.UUID, ref models.ItemRef, quantity int) error {
	if quantity < 1 {
		return apperrors.Validation("quantity must be at least 1, got %d", quantity)
	}

	result := s.db.Model(&models.CartItem{}).
		Where("user_id = ? AND item_kind = ? AND item_id = ?", userID, ref.Kind, ref.ID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("item %s is not in the cart", ref.String())
	}
	return nil
}

func (s *CartService) RemoveItem(userID uuid.UUID, ref models.ItemRef) error {
	result := s.db.Where("user_id = ? AND item_kind = ? AND item_id = ?", userID, ref.Kind, ref.ID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("item %s is not in the cart", ref.String())
	}
	return nil
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// GetCart returns the cart with each line resolved against the live catalog.
// Lines whose item has since been deleted are dropped from the view.
func (s *CartService) GetCart(userID uuid.UUID) ([]CartLine, error) {
	var rows []models.CartItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		item, err := s.catalog.GetItem(row.Ref())
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		lines = append(lines, CartLine{ID: row.ID, Quantity: row.Quantity, Item: *item})
	}
	return lines, nil
}
