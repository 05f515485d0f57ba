// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookhaven/bookmarket-backend/internal/apperrors"
	"github.com/bookhaven/bookmarket-backend/internal/models"
	"github.com/bookhaven/bookmarket-backend/internal/repositories"
)

type OrderService struct {
	db           Transactor
	books        repositories.BookRepository
	libraryBooks repositories.LibraryBookRepository
	payments     *PaymentService
}

type CheckoutRequest struct {
	ShippingInfo map[string]interface{} `json:"shipping_info,omitempty"`
}

type CheckoutResponse struct {
	Order   *models.Order          `json:"order"`
	Payment *PaymentIntentResponse `json:"payment"`
}

func NewOrderService(
	db Transactor,
	books repositories.BookRepository,
	libraryBooks repositories.LibraryBookRepository,
	payments *PaymentService,
) *OrderService {
	return &OrderService{
		db:           db,
		books:        books,
		libraryBooks: libraryBooks,
		payments:     payments,
	}
}

// Checkout turns the user's cart into a pending order. Every line is
// re-resolved against the catalog inside the transaction: an item that is
// gone or not orderable fails the whole checkout rather than silently
// shipping a partial order. Prices and titles are snapshotted onto the
// order, and the cart is cleared on success.
func (s *OrderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*CheckoutResponse, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartRows []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at").Find(&cartRows).Error; err != nil {
			return err
		}
		if len(cartRows) == 0 {
			return apperrors.Validation("cart is empty")
		}

		var items []models.OrderItem
		var total float64

		for _, row := range cartRows {
			ref := row.Ref()
			item, err := s.resolveOrderLine(tx, ref)
			if err != nil {
				return err
			}
			if !item.Orderable {
				return apperrors.Validation("item %s is not orderable", ref.String())
			}

			items = append(items, models.OrderItem{
				ItemKind:    ref.Kind,
				ItemID:      ref.ID,
				BookstoreID: item.BookstoreID,
				Title:       item.Title,
				UnitPrice:   item.Price,
				Quantity:    row.Quantity,
			})
			total += item.Price * float64(row.Quantity)
		}

		order = &models.Order{
			UserID:       userID,
			Status:       models.OrderStatusPending,
			Total:        total,
			ShippingInfo: models.JSONB(req.ShippingInfo),
			Items:        items,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.CreateIntentForOrder(order)
	if err != nil {
		return nil, err
	}

	order.PaymentIntentID = payment.PaymentID
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("payment_intent_id", payment.PaymentID).
			Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
	}).Info("Order created")

	return &CheckoutResponse{Order: order, Payment: payment}, nil
}

// ConfirmPayment flips a pending order to paid once Stripe reports the
// payment intent as succeeded.
func (s *OrderService) ConfirmPayment(orderID uint, userID uuid.UUID) (*models.Order, error) {
	order, err := s.getOwnedOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.Validation("order %d is %s, not pending", orderID, order.Status)
	}
	if order.PaymentIntentID == "" {
		return nil, apperrors.Validation("order %d has no payment intent", orderID)
	}

	succeeded, err := s.payments.IntentSucceeded(order.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if !succeeded {
		return nil, apperrors.Validation("payment for order %d has not completed", orderID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Update("status", models.OrderStatusPaid).
			Error
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusPaid

	logrus.WithField("order_id", orderID).Info("Order paid")
	return order, nil
}

// CancelOrder cancels a pending order. Paid orders are refunded through
// Stripe before flipping to cancelled.
func (s *OrderService) CancelOrder(orderID uint, userID uuid.UUID) (*models.Order, error) {
	order, err := s.getOwnedOrder(orderID, userID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case models.OrderStatusPending:
		// nothing captured yet
	case models.OrderStatusPaid:
		if err := s.payments.RefundIntent(order.PaymentIntentID); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.Validation("order %d is already cancelled", orderID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Update("status", models.OrderStatusCancelled).
			Error
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCancelled

	logrus.WithField("order_id", orderID).Info("Order cancelled")
	return order, nil
}

func (s *OrderService) GetOrder(orderID uint, userID uuid.UUID) (*models.Order, error) {
	return s.getOwnedOrder(orderID, userID)
}

func (s *OrderService) ListOrders(userID uuid.UUID, limit, offset int) ([]models.Order, int64, error) {
	var total int64
	var orders []models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
			return err
		}
		return tx.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&orders).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *OrderService) resolveOrderLine(tx *gorm.DB, ref models.ItemRef) (*CatalogItem, error) {
	switch ref.Kind {
	case models.ItemKindLibrary:
		book, err := s.libraryBooks.GetByID(tx, ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Validation("item %s is no longer available", ref.String())
			}
			return nil, err
		}
		item := CatalogItemFromLibraryBook(book)
		return &item, nil
	default:
		book, err := s.books.GetByID(tx, ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Validation("item %s is no longer available", ref.String())
			}
			return nil, err
		}
		item := CatalogItemFromBook(book)
		return &item, nil
	}
}

func (s *OrderService) getOwnedOrder(orderID uint, userID uuid.UUID) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Preload("Items").First(&order, "id = ?", orderID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %d not found", orderID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != userID {
		return nil, apperrors.Authorization("order %d does not belong to this user", orderID)
	}
	return &order, nil
}
