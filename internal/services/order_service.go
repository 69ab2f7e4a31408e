// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/config"
	"github.com/shaivyah/storefront-backend/internal/database"
	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/pricing"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

// OrderNotifier receives order events after they are committed.
type OrderNotifier interface {
	OrderPlaced(order *models.Order, user *models.User) error
	OrderStatusChanged(order *models.Order, user *models.User) error
}

type OrderService struct {
	db        *gorm.DB
	codCities map[string]struct{}
	notifier  OrderNotifier
}

type OrderItemRequest struct {
	Product uuid.UUID `json:"product"`
	Qty     int       `json:"qty"`
}

// CreateOrderRequest is checked by validateOrderRequest rather than tags
// so that address errors come back one at a time in form order.
type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	CouponCode      string                 `json:"couponCode"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func NewOrderService(db *gorm.DB, cfg *config.Config, notifier OrderNotifier) *OrderService {
	cities := make(map[string]struct{}, len(cfg.Checkout.CODCities))
	for _, city := range cfg.Checkout.CODCities {
		cities[strings.ToLower(strings.TrimSpace(city))] = struct{}{}
	}

	return &OrderService{
		db:        db,
		codCities: cities,
		notifier:  notifier,
	}
}

// CreateOrder prices and persists an order in one transaction. Each item is
// snapshotted from the catalog; a missing product aborts the whole order.
// The caller's server cart is cleared in the same transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	method, err := s.validateOrderRequest(req)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          userID,
		ShippingAddress: trimAddress(req.ShippingAddress),
		PaymentMethod:   method,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusPending,
	}

	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		items := make(models.OrderItems, 0, len(req.Items))
		lines := make([]pricing.Line, 0, len(req.Items))

		for _, it := range req.Items {
			product, err := findProduct(tx, it.Product)
			if err != nil {
				return err
			}

			items = append(items, models.OrderItem{
				Product:   product.ID,
				ProductID: product.ProductID,
				Name:      product.Name,
				Image:     product.PrimaryImage(),
				Price:     product.Price,
				Discount:  product.Discount,
				Qty:       it.Qty,
			})
			lines = append(lines, pricing.Line{
				Price:    product.Price,
				Discount: product.Discount,
				Quantity: it.Qty,
			})
		}

		subtotal := pricing.Subtotal(lines)
		order.Items = items
		order.Subtotal = pricing.Round(subtotal)
		order.Total = order.Subtotal

		if code := strings.TrimSpace(req.CouponCode); code != "" {
			coupon, err := lookupCoupon(tx, code)
			if err != nil {
				return err
			}
			order.CouponCode = coupon.Code
			order.CouponPct = coupon.DiscountPct
			order.Total = pricing.ApplyCoupon(subtotal, coupon.DiscountPct)
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return clearCart(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
		"method":   order.PaymentMethod,
	}).Info("Order created")

	s.notify(ctx, order, false)
	return order, nil
}

func (s *OrderService) validateOrderRequest(req *CreateOrderRequest) (models.PaymentMethod, error) {
	if len(req.Items) == 0 {
		return "", newFieldError("items", i18n.KeyOrderNoItems)
	}
	for _, it := range req.Items {
		if it.Qty < 1 {
			return "", newFieldError("items", i18n.KeyOrderInvalidQuantity)
		}
	}

	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return "", err
	}

	method, ok := parsePaymentMethod(req.PaymentMethod)
	if !ok {
		return "", newFieldError("paymentMethod", i18n.KeyOrderInvalidPaymentMethod)
	}

	if method == models.PaymentMethodCOD && !s.CODAvailable(req.ShippingAddress.City) {
		return "", newFieldError("paymentMethod", i18n.KeyOrderCODUnavailable)
	}

	return method, nil
}

// CODAvailable reports whether cash on delivery is offered for city.
func (s *OrderService) CODAvailable(city string) bool {
	_, ok := s.codCities[strings.ToLower(strings.TrimSpace(city))]
	return ok
}

func validateShippingAddress(addr models.ShippingAddress) error {
	required := []struct {
		field string
		value string
		key   string
	}{
		{"name", addr.Name, i18n.KeyAddressNameRequired},
		{"phone", addr.Phone, i18n.KeyAddressPhoneRequired},
		{"address", addr.Address, i18n.KeyAddressAddressRequired},
		{"city", addr.City, i18n.KeyAddressCityRequired},
		{"state", addr.State, i18n.KeyAddressStateRequired},
		{"pincode", addr.Pincode, i18n.KeyAddressPincodeRequired},
	}
	for _, r := range required {
		if utils.ValidateVar(strings.TrimSpace(r.value), "required") != nil {
			return newFieldError(r.field, r.key)
		}
	}

	if utils.ValidateVar(strings.TrimSpace(addr.Pincode), "pincode") != nil {
		return newFieldError("pincode", i18n.KeyAddressInvalidPincode)
	}
	if utils.ValidateVar(strings.TrimSpace(addr.Phone), "phone") != nil {
		return newFieldError("phone", i18n.KeyAddressInvalidPhone)
	}
	return nil
}

func trimAddress(addr models.ShippingAddress) models.ShippingAddress {
	return models.ShippingAddress{
		Name:    strings.TrimSpace(addr.Name),
		Phone:   strings.TrimSpace(addr.Phone),
		Address: strings.TrimSpace(addr.Address),
		City:    strings.TrimSpace(addr.City),
		State:   strings.TrimSpace(addr.State),
		Pincode: strings.TrimSpace(addr.Pincode),
	}
}

func parsePaymentMethod(method string) (models.PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "cod":
		return models.PaymentMethodCOD, true
	case "online":
		return models.PaymentMethodOnline, true
	}
	return "", false
}

// ListOrders returns all orders newest first, with their customers.
func (s *OrderService) ListOrders(ctx context.Context, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orders := []models.Order{}
	err := utils.ApplyPagination(query, params).
		Preload("User").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return findOrder(s.db.WithContext(ctx), id)
}

// UpdateStatus sets any of the five statuses regardless of the current one.
// An empty status keeps the current one. No history is kept.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, newFieldError("status", i18n.KeyOrderInvalidStatus)
	}

	db := s.db.WithContext(ctx)
	order, err := findOrder(db, id)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return order, nil
	}

	previous := order.Status
	if err := db.Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     previous,
		"to":       status,
	}).Info("Order status updated")

	if previous != status {
		s.notify(ctx, order, true)
	}
	return order, nil
}

// notify loads the customer and sends in the background; failures are logged.
func (s *OrderService) notify(ctx context.Context, order *models.Order, statusChange bool) {
	if s.notifier == nil {
		return
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", order.UserID).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("Skipping order notification, user not found")
		return
	}

	snapshot := *order
	go func() {
		send := s.notifier.OrderPlaced
		if statusChange {
			send = s.notifier.OrderStatusChanged
		}
		if err := send(&snapshot, &user); err != nil {
			logrus.WithError(err).WithField("order_id", snapshot.ID).Error("Failed to send order notification")
		}
	}()
}

func findOrder(db *gorm.DB, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}
