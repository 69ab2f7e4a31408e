// internal/models/testimonial.go
package models

import "github.com/google/uuid"

type Testimonial struct {
	BaseModel
	UserID  *uuid.UUID        `json:"userId,omitempty" gorm:"type:uuid;index"`
	Name    string            `json:"name" gorm:"size:100;not null"`
	Message string            `json:"message" gorm:"type:text;not null"`
	Rating  int               `json:"rating" gorm:"not null"`
	OrderID string            `json:"orderId,omitempty" gorm:"size:64"`
	Status  TestimonialStatus `json:"status" gorm:"type:varchar(10);not null;index"`
}
