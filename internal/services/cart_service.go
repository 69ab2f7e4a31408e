// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/pricing"
)

// CartService is the server copy of a signed-in user's cart. The client
// keeps its own copy and syncs on a best-effort basis.
type CartService struct {
	db *gorm.DB
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type RemoveFromCartRequest struct {
	ProductID uuid.UUID `json:"productId" form:"productId" validate:"required"`
}

// CartLine carries the resolved product under "productId", or null when
// the product no longer exists.
type CartLine struct {
	Product  *models.Product `json:"productId"`
	Quantity int             `json:"quantity"`
}

type CartView struct {
	Products []CartLine `json:"products"`
	Total    float64    `json:"total"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	var items []models.CartItem
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return buildCartView(items), nil
}

func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *AddToCartRequest) (*CartView, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findProduct(tx, req.ProductID); err != nil {
			return err
		}

		var item models.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
		switch {
		case err == nil:
			return tx.Model(&item).Update("quantity", item.Quantity+quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.CartItem{
				UserID:     userID,
				ProductRef: req.ProductID,
				Quantity:   quantity,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) UpdateItem(ctx context.Context, userID uuid.UUID, req *UpdateCartRequest) (*CartView, error) {
	result := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCartItemNotFound
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem is idempotent.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error; err != nil {
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return clearCart(s.db.WithContext(ctx), userID)
}

func clearCart(db *gorm.DB, userID uuid.UUID) error {
	if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// buildCartView prices lines from live product data. Lines whose product
// is gone stay in the view but add nothing to the total.
func buildCartView(items []models.CartItem) *CartView {
	view := &CartView{Products: make([]CartLine, 0, len(items))}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		view.Products = append(view.Products, CartLine{
			Product:  item.Product,
			Quantity: item.Quantity,
		})
		if item.Product == nil {
			continue
		}
		lines = append(lines, pricing.Line{
			Price:    item.Product.Price,
			Discount: item.Product.Discount,
			Quantity: item.Quantity,
		})
	}

	view.Total = pricing.Total(lines)
	return view
}
