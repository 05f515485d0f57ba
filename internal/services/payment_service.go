// internal/services/payment_service.go
package services

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"

	"github.com/bookhaven/bookmarket-backend/internal/config"
	"github.com/bookhaven/bookmarket-backend/internal/models"
)

type PaymentService struct {
	config *config.Config
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

func NewPaymentService(config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		config: config,
	}
}

// CreateIntentForOrder opens a Stripe PaymentIntent for the order total.
// Amounts go to Stripe in the currency's smallest unit.
func (s *PaymentService) CreateIntentForOrder(order *models.Order) (*PaymentIntentResponse, error) {
	amountInCents := int64(order.Total * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("order_id", fmt.Sprintf("%d", order.ID))
	params.AddMetadata("user_id", order.UserID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// IntentSucceeded reports whether the payment intent has settled on Stripe's
// side. The caller flips the order to paid only on a true result.
func (s *PaymentService) IntentSucceeded(paymentIntentID string) (bool, error) {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return false, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}

// RefundIntent refunds the full captured amount of a payment intent.
func (s *PaymentService) RefundIntent(paymentIntentID string) error {
	_, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	})
	if err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}
	return nil
}
