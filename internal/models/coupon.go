// internal/models/coupon.go
package models

const DefaultCouponSource = "website"

type Coupon struct {
	BaseModel
	Code        string  `json:"code" gorm:"size:50;not null;index"`
	DiscountPct float64 `json:"discountPct" gorm:"type:decimal(5,2);not null"`
	Active      bool    `json:"active" gorm:"not null"`
	SourceTag   string  `json:"sourceTag" gorm:"size:50"`
}
