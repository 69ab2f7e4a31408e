// internal/services/errors.go
package services

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCartItemNotFound    = errors.New("cart item not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryInUse      = errors.New("category still has products")
	ErrCouponExists       = errors.New("coupon code already exists")
	ErrInvalidCoupon      = errors.New("invalid coupon")
	ErrForbidden          = errors.New("forbidden")

	ErrPaymentNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidFileType      = errors.New("invalid file type")
	ErrFileTooLarge         = errors.New("file too large")
)

// FieldError is a validation failure on one input field. Key is the
// i18n key of the user-facing message.
type FieldError struct {
	Field string
	Key   string
}

func (e *FieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Key
}

func newFieldError(field, key string) *FieldError {
	return &FieldError{Field: field, Key: key}
}
