// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/config"
	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/pricing"
)

// PaymentIntent is the gateway's view of a payment attempt.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*PaymentIntent, error)
	Refund(ctx context.Context, intentID string) error
}

// StripeGateway talks to Stripe PaymentIntents.
type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, intentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("failed to process refund: %w", err)
	}
	return nil
}

// PaymentService settles Online orders through a PaymentGateway. With no
// gateway every operation fails with ErrPaymentNotConfigured.
type PaymentService struct {
	db      *gorm.DB
	config  *config.Config
	gateway PaymentGateway
}

type PaymentOrderRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

type PaymentIntentResponse struct {
	OrderID        uuid.UUID `json:"orderId"`
	ClientSecret   string    `json:"clientSecret"`
	PaymentID      string    `json:"paymentId"`
	Status         string    `json:"status"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	PublishableKey string    `json:"publishableKey,omitempty"`
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, gateway PaymentGateway) *PaymentService {
	return &PaymentService{
		db:      db,
		config:  cfg,
		gateway: gateway,
	}
}

func (s *PaymentService) Enabled() bool {
	return s.gateway != nil
}

// CreateIntent starts a payment for the caller's own unpaid Online order.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, orderID uuid.UUID) (*PaymentIntentResponse, error) {
	if !s.Enabled() {
		return nil, ErrPaymentNotConfigured
	}

	db := s.db.WithContext(ctx)
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if order.PaymentMethod != models.PaymentMethodOnline {
		return nil, newFieldError("orderId", i18n.KeyPaymentNotOnline)
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, newFieldError("orderId", i18n.KeyPaymentAlreadyPaid)
	}

	amount := pricing.MinorUnits(order.Total)
	intent, err := s.gateway.CreateIntent(ctx, amount, s.config.Payment.Currency, map[string]string{
		"order_id": order.ID.String(),
		"user_id":  userID.String(),
	})
	if err != nil {
		return nil, err
	}

	if err := db.Model(order).Updates(map[string]interface{}{
		"payment_reference": intent.ID,
		"payment_status":    models.PaymentStatusPending,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to store payment reference: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"payment_id": intent.ID,
		"amount":     amount,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{
		OrderID:        order.ID,
		ClientSecret:   intent.ClientSecret,
		PaymentID:      intent.ID,
		Status:         intent.Status,
		Amount:         amount,
		Currency:       s.config.Payment.Currency,
		PublishableKey: s.config.Payment.StripePublishableKey,
	}, nil
}

// Verify refreshes the order's payment status from the gateway. Admins may
// verify any order.
func (s *PaymentService) Verify(ctx context.Context, userID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error) {
	if !s.Enabled() {
		return nil, ErrPaymentNotConfigured
	}

	db := s.db.WithContext(ctx)
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrForbidden
	}
	if order.PaymentReference == "" {
		return nil, newFieldError("orderId", i18n.KeyPaymentNoReference)
	}

	intent, err := s.gateway.GetIntent(ctx, order.PaymentReference)
	if err != nil {
		return nil, err
	}

	status := paymentStatusFor(intent.Status)
	if status != order.PaymentStatus {
		if err := db.Model(order).Update("payment_status", status).Error; err != nil {
			return nil, fmt.Errorf("failed to update payment status: %w", err)
		}
		order.PaymentStatus = status
	}

	logrus.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"intent_status":  intent.Status,
		"payment_status": status,
	}).Info("Payment verified")
	return order, nil
}

func (s *PaymentService) Refund(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if !s.Enabled() {
		return nil, ErrPaymentNotConfigured
	}

	db := s.db.WithContext(ctx)
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != models.PaymentStatusPaid || order.PaymentReference == "" {
		return nil, newFieldError("orderId", i18n.KeyPaymentNotPaid)
	}

	if err := s.gateway.Refund(ctx, order.PaymentReference); err != nil {
		return nil, err
	}

	if err := db.Model(order).Update("payment_status", models.PaymentStatusRefunded).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	order.PaymentStatus = models.PaymentStatusRefunded

	logrus.WithField("order_id", order.ID).Info("Payment refunded")
	return order, nil
}

func paymentStatusFor(intentStatus string) models.PaymentStatus {
	switch stripe.PaymentIntentStatus(intentStatus) {
	case stripe.PaymentIntentStatusSucceeded:
		return models.PaymentStatusPaid
	case stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresCapture,
		stripe.PaymentIntentStatusProcessing:
		return models.PaymentStatusPending
	default:
		return models.PaymentStatusFailed
	}
}
