package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

func (s *ServiceSuite) placeOrder(userID uuid.UUID, method string, items ...OrderItemRequest) *models.Order {
	order, err := s.orders.CreateOrder(s.ctx, userID, &CreateOrderRequest{
		Items:           items,
		ShippingAddress: validAddress(),
		PaymentMethod:   method,
	})
	s.Require().NoError(err)
	return order
}

func (s *ServiceSuite) TestCreateOrderSnapshotsAndClearsCart() {
	user := s.createUser("buyer@example.com")
	saree := s.createProduct("saree", 1000, 20)
	s.createCoupon("FEST10", 10)

	_, err := s.cart.AddItem(s.ctx, user.ID, &AddToCartRequest{ProductID: saree.ID, Quantity: 2})
	s.Require().NoError(err)

	order, err := s.orders.CreateOrder(s.ctx, user.ID, &CreateOrderRequest{
		Items:           []OrderItemRequest{{Product: saree.ID, Qty: 2}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
		CouponCode:      "fest10",
	})
	s.Require().NoError(err)

	s.Equal(models.OrderStatusPending, order.Status)
	s.Equal(models.PaymentStatusPending, order.PaymentStatus)
	s.Equal(models.PaymentMethodCOD, order.PaymentMethod)
	s.Equal(1600.0, order.Subtotal)
	s.Equal(1440.0, order.Total)
	s.Equal("FEST10", order.CouponCode)
	s.Equal(10.0, order.CouponPct)

	s.Require().Len(order.Items, 1)
	item := order.Items[0]
	s.Equal(saree.ID, item.Product)
	s.Equal(saree.ProductID, item.ProductID)
	s.Equal("saree", item.Name)
	s.Equal(saree.Images[0], item.Image)
	s.Equal(1000.0, item.Price)
	s.Equal(20.0, item.Discount)
	s.Equal(2, item.Qty)

	view, err := s.cart.GetCart(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(view.Products)

	select {
	case id := <-s.notifier.placed:
		s.Equal(order.ID, id)
	case <-time.After(2 * time.Second):
		s.Fail("order confirmation was not sent")
	}

	_, err = s.products.UpdateProduct(s.ctx, saree.ID, &UpdateProductRequest{
		Name:     strPtr("renamed"),
		Price:    floatPtr(5000),
		Discount: floatPtr(0),
	})
	s.Require().NoError(err)

	stored, err := s.orders.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(item, stored.Items[0])
	s.Equal(1440.0, stored.Total)
	s.Equal(validAddress(), stored.ShippingAddress)
}

func (s *ServiceSuite) TestCreateOrderIsAtomicOnMissingProduct() {
	user := s.createUser("atomic@example.com")
	saree := s.createProduct("saree", 1000, 0)
	_, err := s.cart.AddItem(s.ctx, user.ID, &AddToCartRequest{ProductID: saree.ID, Quantity: 1})
	s.Require().NoError(err)

	_, err = s.orders.CreateOrder(s.ctx, user.ID, &CreateOrderRequest{
		Items: []OrderItemRequest{
			{Product: saree.ID, Qty: 1},
			{Product: uuid.New(), Qty: 1},
		},
		ShippingAddress: validAddress(),
		PaymentMethod:   "Online",
	})
	s.ErrorIs(err, ErrProductNotFound)

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	s.Zero(count)

	view, err := s.cart.GetCart(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Len(view.Products, 1)
}

func (s *ServiceSuite) TestCreateOrderRejectsUnknownCoupon() {
	user := s.createUser("coupon@example.com")
	saree := s.createProduct("saree", 1000, 0)

	_, err := s.orders.CreateOrder(s.ctx, user.ID, &CreateOrderRequest{
		Items:           []OrderItemRequest{{Product: saree.ID, Qty: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "Online",
		CouponCode:      "GHOST",
	})
	s.ErrorIs(err, ErrInvalidCoupon)

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	s.Zero(count)
}

func (s *ServiceSuite) TestCreateOrderValidation() {
	user := s.createUser("validate@example.com")
	saree := s.createProduct("saree", 1000, 0)
	items := []OrderItemRequest{{Product: saree.ID, Qty: 1}}

	withAddress := func(mutate func(*models.ShippingAddress)) *CreateOrderRequest {
		addr := validAddress()
		mutate(&addr)
		return &CreateOrderRequest{Items: items, ShippingAddress: addr, PaymentMethod: "Online"}
	}

	cases := []struct {
		name  string
		req   *CreateOrderRequest
		field string
		key   string
	}{
		{"no items", &CreateOrderRequest{ShippingAddress: validAddress(), PaymentMethod: "COD"}, "items", i18n.KeyOrderNoItems},
		{"zero quantity", &CreateOrderRequest{Items: []OrderItemRequest{{Product: saree.ID}}, ShippingAddress: validAddress(), PaymentMethod: "COD"}, "items", i18n.KeyOrderInvalidQuantity},
		{"name first", &CreateOrderRequest{Items: items, PaymentMethod: "COD"}, "name", i18n.KeyAddressNameRequired},
		{"blank phone", withAddress(func(a *models.ShippingAddress) { a.Phone = "  " }), "phone", i18n.KeyAddressPhoneRequired},
		{"missing city", withAddress(func(a *models.ShippingAddress) { a.City = "" }), "city", i18n.KeyAddressCityRequired},
		{"missing pincode", withAddress(func(a *models.ShippingAddress) { a.Pincode = "" }), "pincode", i18n.KeyAddressPincodeRequired},
		{"short pincode", withAddress(func(a *models.ShippingAddress) { a.Pincode = "12345" }), "pincode", i18n.KeyAddressInvalidPincode},
		{"short phone", withAddress(func(a *models.ShippingAddress) { a.Phone = "98765" }), "phone", i18n.KeyAddressInvalidPhone},
		{"pincode before phone", withAddress(func(a *models.ShippingAddress) { a.Phone = "98765"; a.Pincode = "5000" }), "pincode", i18n.KeyAddressInvalidPincode},
		{"bad method", &CreateOrderRequest{Items: items, ShippingAddress: validAddress(), PaymentMethod: "card"}, "paymentMethod", i18n.KeyOrderInvalidPaymentMethod},
		{"cod outside city", func() *CreateOrderRequest {
			r := withAddress(func(a *models.ShippingAddress) { a.City = "Mumbai" })
			r.PaymentMethod = "COD"
			return r
		}(), "paymentMethod", i18n.KeyOrderCODUnavailable},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.orders.CreateOrder(s.ctx, user.ID, tc.req)
			s.requireFieldError(err, tc.field, tc.key)
		})
	}

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	s.Zero(count)
}

func (s *ServiceSuite) TestCODCityMatchIgnoresCase() {
	s.True(s.orders.CODAvailable(" hyderabad "))
	s.False(s.orders.CODAvailable("Pune"))

	user := s.createUser("online@example.com")
	saree := s.createProduct("saree", 1000, 0)

	order, err := s.orders.CreateOrder(s.ctx, user.ID, &CreateOrderRequest{
		Items: []OrderItemRequest{{Product: saree.ID, Qty: 1}},
		ShippingAddress: func() models.ShippingAddress {
			a := validAddress()
			a.City = "Mumbai"
			return a
		}(),
		PaymentMethod: "ONLINE",
	})
	s.Require().NoError(err)
	s.Equal(models.PaymentMethodOnline, order.PaymentMethod)
}

func (s *ServiceSuite) TestOrderStatusAnyToAny() {
	user := s.createUser("status@example.com")
	saree := s.createProduct("saree", 1000, 0)
	order := s.placeOrder(user.ID, "COD", OrderItemRequest{Product: saree.ID, Qty: 1})
	<-s.notifier.placed

	sequence := []models.OrderStatus{
		models.OrderStatusDelivered,
		models.OrderStatusPending,
		models.OrderStatusCancelled,
		models.OrderStatusShipped,
		models.OrderStatusProcessing,
	}
	for _, status := range sequence {
		updated, err := s.orders.UpdateStatus(s.ctx, order.ID, status)
		s.Require().NoError(err)
		s.Equal(status, updated.Status)

		stored, err := s.orders.GetOrder(s.ctx, order.ID)
		s.Require().NoError(err)
		s.Equal(status, stored.Status)

		select {
		case got := <-s.notifier.changed:
			s.Equal(status, got)
		case <-time.After(2 * time.Second):
			s.Fail("status email was not sent")
		}
	}

	kept, err := s.orders.UpdateStatus(s.ctx, order.ID, "")
	s.Require().NoError(err)
	s.Equal(models.OrderStatusProcessing, kept.Status)

	_, err = s.orders.UpdateStatus(s.ctx, order.ID, "Lost")
	s.requireFieldError(err, "status", i18n.KeyOrderInvalidStatus)

	_, err = s.orders.UpdateStatus(s.ctx, order.ID, "processing")
	s.requireFieldError(err, "status", i18n.KeyOrderInvalidStatus)

	_, err = s.orders.UpdateStatus(s.ctx, uuid.New(), models.OrderStatusShipped)
	s.ErrorIs(err, ErrOrderNotFound)
}

func (s *ServiceSuite) TestListOrders() {
	first := s.createUser("first@example.com")
	second := s.createUser("second@example.com")
	saree := s.createProduct("saree", 1000, 0)

	older := s.placeOrder(first.ID, "COD", OrderItemRequest{Product: saree.ID, Qty: 1})
	s.Require().NoError(s.db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := s.placeOrder(second.ID, "Online", OrderItemRequest{Product: saree.ID, Qty: 3})

	orders, total, err := s.orders.ListOrders(s.ctx, utils.PaginationParams{})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(orders, 2)
	s.Equal(newer.ID, orders[0].ID)
	s.Equal(older.ID, orders[1].ID)
	s.Require().NotNil(orders[0].User)
	s.Equal("second@example.com", orders[0].User.Email)

	mine, err := s.orders.ListUserOrders(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(older.ID, mine[0].ID)
}
