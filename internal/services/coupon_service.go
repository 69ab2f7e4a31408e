// internal/services/coupon_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/pricing"
)

type CouponService struct {
	db *gorm.DB
}

type CreateCouponRequest struct {
	Code        string  `json:"code" validate:"required,min=3,max=50"`
	DiscountPct float64 `json:"discountPct" validate:"gt=0,lte=100"`
	Active      *bool   `json:"active"`
	SourceTag   string  `json:"sourceTag" validate:"max=50"`
}

type ApplyCouponRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

type CouponApplication struct {
	Code        string  `json:"code"`
	DiscountPct float64 `json:"discountPct"`
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// ListCoupons returns active coupons, or every coupon when includeInactive is set.
func (s *CouponService) ListCoupons(ctx context.Context, includeInactive bool) ([]models.Coupon, error) {
	query := s.db.WithContext(ctx).Order("created_at desc")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	coupons := []models.Coupon{}
	if err := query.Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, req *CreateCouponRequest) (*models.Coupon, error) {
	db := s.db.WithContext(ctx)
	code := strings.TrimSpace(req.Code)

	var count int64
	if err := db.Model(&models.Coupon{}).Where("LOWER(code) = ?", strings.ToLower(code)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrCouponExists
	}

	coupon := &models.Coupon{
		Code:        code,
		DiscountPct: req.DiscountPct,
		Active:      true,
		SourceTag:   strings.TrimSpace(req.SourceTag),
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}
	if coupon.SourceTag == "" {
		coupon.SourceTag = models.DefaultCouponSource
	}

	if err := db.Create(coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Coupon{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

// ApplyCoupon previews the coupon against a client supplied subtotal.
func (s *CouponService) ApplyCoupon(ctx context.Context, req *ApplyCouponRequest) (*CouponApplication, error) {
	coupon, err := lookupCoupon(s.db.WithContext(ctx), req.Code)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.NewFromFloat(req.Subtotal)
	total := pricing.ApplyCoupon(subtotal, coupon.DiscountPct)

	return &CouponApplication{
		Code:        coupon.Code,
		DiscountPct: coupon.DiscountPct,
		Subtotal:    req.Subtotal,
		Discount:    pricing.Round(subtotal) - total,
		Total:       total,
	}, nil
}

// lookupCoupon matches active coupons by code, ignoring case.
func lookupCoupon(db *gorm.DB, code string) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCoupon
	}

	var coupon models.Coupon
	err := db.Where("LOWER(code) = ? AND active = ?", strings.ToLower(code), true).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &coupon, nil
}
