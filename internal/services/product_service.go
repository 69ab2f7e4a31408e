// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/cache"
	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

const maxProductCodeAttempts = 10

type ProductService struct {
	db    *gorm.DB
	cache *cache.ProductCache
}

type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=255"`
	Price       float64    `json:"price" validate:"required,gt=0"`
	Discount    float64    `json:"discount" validate:"gte=0,lte=100"`
	Category    string     `json:"category" validate:"max=100"`
	CategoryRef *uuid.UUID `json:"categoryRef"`
	Fabric      string     `json:"fabric" validate:"max=100"`
	Color       string     `json:"color" validate:"max=50"`
	Occasion    string     `json:"occasion" validate:"max=100"`
	Description string     `json:"description"`
	Images      []string   `json:"images" validate:"required,min=1,dive,required"`
}

// UpdateProductRequest applies only the fields that are present.
type UpdateProductRequest struct {
	Name        *string    `json:"name" validate:"omitnil,min=2,max=255"`
	Price       *float64   `json:"price" validate:"omitnil,gt=0"`
	Discount    *float64   `json:"discount" validate:"omitnil,gte=0,lte=100"`
	Category    *string    `json:"category" validate:"omitnil,max=100"`
	CategoryRef *uuid.UUID `json:"categoryRef"`
	Fabric      *string    `json:"fabric" validate:"omitnil,max=100"`
	Color       *string    `json:"color" validate:"omitnil,max=50"`
	Occasion    *string    `json:"occasion" validate:"omitnil,max=100"`
	Description *string    `json:"description"`
	Images      *[]string  `json:"images" validate:"omitnil,min=1,dive,required"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Query    string
	Category string // category id or name
	PriceMin *float64
	PriceMax *float64
}

func NewProductService(db *gorm.DB, productCache *cache.ProductCache) *ProductService {
	return &ProductService{
		db:    db,
		cache: productCache,
	}
}

func (s *ProductService) SearchProducts(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if q := strings.TrimSpace(params.Query); q != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, utils.ContainsPattern(q))
	}

	if category := strings.TrimSpace(params.Category); category != "" {
		if id, err := uuid.Parse(category); err == nil {
			query = query.Where("category_ref = ?", id)
		} else {
			query = query.Where("LOWER(category) = ?", strings.ToLower(category))
		}
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "price", "name", "discount"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, result := s.cache.Get(ctx, id); result == cache.Hit {
		return product, nil
	} else if result == cache.Missing {
		return nil, ErrProductNotFound
	}

	product, err := findProduct(s.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			s.cache.SetMissing(ctx, id)
		}
		return nil, err
	}

	s.cache.Set(ctx, product)
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	db := s.db.WithContext(ctx)

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Discount:    req.Discount,
		Category:    strings.TrimSpace(req.Category),
		Fabric:      req.Fabric,
		Color:       req.Color,
		Occasion:    req.Occasion,
		Description: req.Description,
		Images:      models.StringArray(req.Images),
	}

	if err := s.resolveCategory(db, product, req.CategoryRef); err != nil {
		return nil, err
	}

	code, err := s.generateProductCode(db)
	if err != nil {
		return nil, err
	}
	product.ProductID = code

	if err := db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"code":       product.ProductID,
	}).Info("Product created")
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	db := s.db.WithContext(ctx)

	product, err := findProduct(db, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
		updates["name"] = product.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
		updates["price"] = product.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
		updates["discount"] = product.Discount
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
		updates["category"] = product.Category
	}
	if req.CategoryRef != nil {
		if err := s.resolveCategory(db, product, req.CategoryRef); err != nil {
			return nil, err
		}
		updates["category_ref"] = *product.CategoryRef
		updates["category"] = product.Category
	}
	if req.Fabric != nil {
		product.Fabric = *req.Fabric
		updates["fabric"] = product.Fabric
	}
	if req.Color != nil {
		product.Color = *req.Color
		updates["color"] = product.Color
	}
	if req.Occasion != nil {
		product.Occasion = *req.Occasion
		updates["occasion"] = product.Occasion
	}
	if req.Description != nil {
		product.Description = *req.Description
		updates["description"] = product.Description
	}
	if req.Images != nil {
		product.Images = models.StringArray(*req.Images)
		updates["images"] = product.Images
	}

	if len(updates) > 0 {
		if err := db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.cache.Invalidate(ctx, id)
	return findProduct(db, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	if _, err := findProduct(db, id); err != nil {
		return err
	}

	if err := db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.cache.Invalidate(ctx, id)
	return nil
}

// resolveCategory links product to the referenced category and copies its
// name. Without a reference, a category name matching an existing
// category is linked as well.
func (s *ProductService) resolveCategory(db *gorm.DB, product *models.Product, ref *uuid.UUID) error {
	if ref != nil {
		category, err := findCategory(db, *ref)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return newFieldError("categoryRef", i18n.KeyCategoryNotFound)
			}
			return err
		}
		product.CategoryRef = &category.ID
		product.Category = category.Name
		return nil
	}

	if product.Category == "" {
		return nil
	}
	category, err := findCategoryByName(db, product.Category)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	product.CategoryRef = &category.ID
	product.Category = category.Name
	return nil
}

// generateProductCode retries until the code is unused, including by
// deleted products.
func (s *ProductService) generateProductCode(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxProductCodeAttempts; attempt++ {
		code, err := utils.GenerateProductCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate product id: %w", err)
		}

		var count int64
		if err := db.Unscoped().Model(&models.Product{}).Where("product_id = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check product id: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("failed to generate a unique product id")
}

func findProduct(db *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}
