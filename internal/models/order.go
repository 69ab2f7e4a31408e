// internal/models/order.go
package models

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID           uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"`
	Items            OrderItems      `json:"items" gorm:"type:jsonb;not null"`
	Subtotal         float64         `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	CouponCode       string          `json:"couponCode,omitempty" gorm:"size:50"`
	CouponPct        float64         `json:"couponPct,omitempty" gorm:"type:decimal(5,2);default:0"`
	Total            float64         `json:"total" gorm:"type:decimal(12,2);not null"`
	ShippingAddress  ShippingAddress `json:"shippingAddress" gorm:"type:jsonb;not null"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod" gorm:"type:varchar(10);not null"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(10);not null"`
	PaymentReference string          `json:"paymentReference,omitempty" gorm:"size:255"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// OrderItem is a snapshot of a product at order time. It is never
// refreshed from the catalog.
type OrderItem struct {
	Product   uuid.UUID `json:"product"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Discount  float64   `json:"discount"`
	Qty       int       `json:"qty"`
}

type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	return marshalJSON(o)
}

func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	return unmarshalJSON(value, o)
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return marshalJSON(a)
}

func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	return unmarshalJSON(value, a)
}
