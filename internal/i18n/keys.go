// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyInternalError = "error.internal"
	KeyRateLimited   = "rate_limit.exceeded"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthForbidden          = "auth.forbidden"

	// User Management
	KeyUserNotFound = "user.not_found"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"
	KeyProductInvalid  = "product.invalid_id"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryExists   = "category.exists"
	KeyCategoryInUse    = "category.in_use"

	// Cart
	KeyCartUpdated      = "cart.updated"
	KeyCartCleared      = "cart.cleared"
	KeyCartItemNotFound = "cart.item_not_found"

	// Orders
	KeyOrderCreated              = "order.created"
	KeyOrderNotFound             = "order.not_found"
	KeyOrderStatusUpdated        = "order.status_updated"
	KeyOrderNoItems              = "order.no_items"
	KeyOrderInvalidQuantity      = "order.invalid_quantity"
	KeyOrderInvalidStatus        = "order.invalid_status"
	KeyOrderInvalidPaymentMethod = "order.invalid_payment_method"
	KeyOrderCODUnavailable       = "order.cod_unavailable"

	// Shipping address
	KeyAddressNameRequired    = "address.name_required"
	KeyAddressPhoneRequired   = "address.phone_required"
	KeyAddressAddressRequired = "address.address_required"
	KeyAddressCityRequired    = "address.city_required"
	KeyAddressStateRequired   = "address.state_required"
	KeyAddressPincodeRequired = "address.pincode_required"
	KeyAddressInvalidPincode  = "address.invalid_pincode"
	KeyAddressInvalidPhone    = "address.invalid_phone"

	// Coupons
	KeyCouponCreated  = "coupon.created"
	KeyCouponDeleted  = "coupon.deleted"
	KeyCouponNotFound = "coupon.not_found"
	KeyCouponInvalid  = "coupon.invalid"
	KeyCouponExists   = "coupon.exists"
	KeyCouponApplied  = "coupon.applied"

	// Testimonials
	KeyTestimonialCreated       = "testimonial.created"
	KeyTestimonialNotFound      = "testimonial.not_found"
	KeyTestimonialStatusUpdated = "testimonial.status_updated"
	KeyTestimonialInvalidStatus = "testimonial.invalid_status"

	// Payments
	KeyPaymentSuccess       = "payment.success"
	KeyPaymentFailed        = "payment.failed"
	KeyPaymentPending       = "payment.pending"
	KeyPaymentRefunded      = "payment.refunded"
	KeyPaymentNotOnline     = "payment.not_online"
	KeyPaymentAlreadyPaid   = "payment.already_paid"
	KeyPaymentNotPaid       = "payment.not_paid"
	KeyPaymentNoReference   = "payment.no_reference"
	KeyPaymentNotConfigured = "payment.not_configured"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationRange    = "validation.out_of_range"
	KeyValidationOneOf    = "validation.one_of"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
	KeyFileRequired      = "file.required"
)
