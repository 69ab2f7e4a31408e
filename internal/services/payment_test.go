package services

import (
	"github.com/google/uuid"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
)

func (s *ServiceSuite) TestPaymentLifecycle() {
	user := s.createUser("payer@example.com")
	saree := s.createProduct("saree", 1000, 20)
	s.createCoupon("FEST10", 10)

	order, err := s.orders.CreateOrder(s.ctx, user.ID, &CreateOrderRequest{
		Items:           []OrderItemRequest{{Product: saree.ID, Qty: 2}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "Online",
		CouponCode:      "FEST10",
	})
	s.Require().NoError(err)

	_, err = s.payments.Refund(s.ctx, order.ID)
	s.requireFieldError(err, "orderId", i18n.KeyPaymentNotPaid)

	_, err = s.payments.Verify(s.ctx, user.ID, false, order.ID)
	s.requireFieldError(err, "orderId", i18n.KeyPaymentNoReference)

	intent, err := s.payments.CreateIntent(s.ctx, user.ID, order.ID)
	s.Require().NoError(err)
	s.Equal(int64(144000), intent.Amount)
	s.Equal("inr", intent.Currency)
	s.Equal("pi_test_1", intent.PaymentID)
	s.Equal("pi_test_1_secret", intent.ClientSecret)
	s.Equal("pk_test", intent.PublishableKey)
	s.Equal(order.ID.String(), s.gateway.metadata[0]["order_id"])

	stranger := s.createUser("stranger@example.com")
	_, err = s.payments.Verify(s.ctx, stranger.ID, false, order.ID)
	s.ErrorIs(err, ErrForbidden)
	_, err = s.payments.CreateIntent(s.ctx, stranger.ID, order.ID)
	s.ErrorIs(err, ErrForbidden)

	s.gateway.status = "processing"
	verified, err := s.payments.Verify(s.ctx, user.ID, false, order.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusPending, verified.PaymentStatus)

	s.gateway.status = "succeeded"
	verified, err = s.payments.Verify(s.ctx, stranger.ID, true, order.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusPaid, verified.PaymentStatus)

	_, err = s.payments.CreateIntent(s.ctx, user.ID, order.ID)
	s.requireFieldError(err, "orderId", i18n.KeyPaymentAlreadyPaid)

	refunded, err := s.payments.Refund(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusRefunded, refunded.PaymentStatus)
	s.Equal([]string{"pi_test_1"}, s.gateway.refunds)

	stored, err := s.orders.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusRefunded, stored.PaymentStatus)
	s.Equal("pi_test_1", stored.PaymentReference)
}

func (s *ServiceSuite) TestPaymentRejectsCODOrders() {
	user := s.createUser("cod@example.com")
	saree := s.createProduct("saree", 1000, 0)
	order := s.placeOrder(user.ID, "COD", OrderItemRequest{Product: saree.ID, Qty: 1})

	_, err := s.payments.CreateIntent(s.ctx, user.ID, order.ID)
	s.requireFieldError(err, "orderId", i18n.KeyPaymentNotOnline)
	s.Empty(s.gateway.amounts)

	_, err = s.payments.CreateIntent(s.ctx, user.ID, uuid.New())
	s.ErrorIs(err, ErrOrderNotFound)
}

func (s *ServiceSuite) TestPaymentStatusMapping() {
	cases := map[string]models.PaymentStatus{
		"succeeded":               models.PaymentStatusPaid,
		"processing":              models.PaymentStatusPending,
		"requires_payment_method": models.PaymentStatusPending,
		"requires_action":         models.PaymentStatusPending,
		"requires_confirmation":   models.PaymentStatusPending,
		"requires_capture":        models.PaymentStatusPending,
		"canceled":                models.PaymentStatusFailed,
		"":                        models.PaymentStatusFailed,
	}
	for in, want := range cases {
		s.Equal(want, paymentStatusFor(in), in)
	}
}

func (s *ServiceSuite) TestPaymentWithoutGateway() {
	payments := NewPaymentService(s.db, s.cfg, nil)
	s.False(payments.Enabled())

	_, err := payments.CreateIntent(s.ctx, uuid.New(), uuid.New())
	s.ErrorIs(err, ErrPaymentNotConfigured)
	_, err = payments.Verify(s.ctx, uuid.New(), true, uuid.New())
	s.ErrorIs(err, ErrPaymentNotConfigured)
	_, err = payments.Refund(s.ctx, uuid.New())
	s.ErrorIs(err, ErrPaymentNotConfigured)
}
