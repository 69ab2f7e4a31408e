// internal/models/product.go
package models

import "github.com/google/uuid"

type Product struct {
	BaseModel
	ProductID   string      `json:"productId" gorm:"uniqueIndex;size:20;not null"`
	Name        string      `json:"name" gorm:"size:255;not null"`
	Price       float64     `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount    float64     `json:"discount" gorm:"type:decimal(5,2);default:0"`
	Category    string      `json:"category" gorm:"size:100;index"`
	CategoryRef *uuid.UUID  `json:"categoryRef,omitempty" gorm:"type:uuid;index"`
	Fabric      string      `json:"fabric" gorm:"size:100"`
	Color       string      `json:"color" gorm:"size:50"`
	Occasion    string      `json:"occasion" gorm:"size:100"`
	Description string      `json:"description" gorm:"type:text"`
	Images      StringArray `json:"images"`
}

// PrimaryImage is the image frozen into order snapshots.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null;index"`
}
