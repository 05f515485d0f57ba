// internal/services/wishlist_service.go
package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
)

type WishlistService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewWishlistService(db *gorm.DB, catalog *CatalogService) *WishlistService {
	return &WishlistService{
		db:      db,
		catalog: catalog,
	}
}

// AddItem saves a catalog item to the user's wishlist. Unlike the cart,
// non-orderable items can be wishlisted; the point is to watch for them
// coming back.
func (s *WishlistService) AddItem(userID uuid.UUID, ref models.ItemRef) (*models.WishlistItem, error) {
	if _, err := s.catalog.GetItem(ref); err != nil {
		return nil, err
	}

	row := &models.WishlistItem{
		UserID:   userID,
		ItemKind: ref.Kind,
		ItemID:   ref.ID,
	}
	if err := s.db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.KindConflict, err, "item %s is already wishlisted", ref.String())
		}
		return nil, err
	}
	return row, nil
}

func (s *WishlistService) RemoveItem(userID uuid.UUID, ref models.ItemRef) error {
	result := s.db.Where("user_id = ? AND item_kind = ? AND item_id = ?", userID, ref.Kind, ref.ID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("item %s is not wishlisted", ref.String())
	}
	return nil
}

// ListItems resolves the wishlist against the live catalog; rows whose item
// has been deleted are skipped.
func (s *WishlistService) ListItems(userID uuid.UUID) ([]CatalogItem, error) {
	var rows []models.WishlistItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]CatalogItem, 0, len(rows))
	for _, row := range rows {
		item, err := s.catalog.GetItem(row.Ref())
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
