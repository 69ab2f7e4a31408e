// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return findCategory(s.db.WithContext(ctx), id)
}

func (s *CategoryService) Create(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)

	if _, err := findCategoryByName(s.db.WithContext(ctx), name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Delete refuses while any live product still points at the category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if _, err := findCategory(db, id); err != nil {
		return err
	}

	var inUse int64
	if err := db.Model(&models.Product{}).Where("category_ref = ?", id).Count(&inUse).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	if err := db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func findCategory(db *gorm.DB, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func findCategoryByName(db *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	if err := db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}
