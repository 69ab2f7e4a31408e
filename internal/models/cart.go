// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem rows are hard deleted; a cart has no history. ProductRef is the
// product row id, named apart from Product.ProductID (the PRD code) so gorm
// resolves Product as belongs-to.
type CartItem struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductRef uuid.UUID `json:"productRef" gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductRef"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
