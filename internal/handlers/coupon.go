// internal/handlers/coupon.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/services"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// GET /coupons
// Admins may pass ?all=true to include inactive coupons.
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	includeInactive := isAdmin(c) && c.Query("all") == "true"

	coupons, err := h.couponService.ListCoupons(c.Request.Context(), includeInactive)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, coupons)
}

// POST /coupons/apply
func (h *CouponHandler) ApplyCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ApplyCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.couponService.ApplyCoupon(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponApplied),
		"coupon":  application,
	})
}

// POST /coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponCreated),
		"coupon":  coupon,
	})
}

// DELETE /coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseID(c, i18n.KeyCouponNotFound)
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponDeleted),
	})
}
