// internal/services/testimonial_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

type TestimonialService struct {
	db *gorm.DB
}

// CreateTestimonialRequest has no status field; submissions always start pending.
type CreateTestimonialRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Message string `json:"message" validate:"required,min=5,max=2000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	OrderID string `json:"orderId" validate:"max=64"`
}

type UpdateTestimonialStatusRequest struct {
	Status models.TestimonialStatus `json:"status" validate:"required"`
}

type TestimonialFilter struct {
	Status string
	Search string
}

type TestimonialCounts struct {
	All      int64 `json:"all"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type AdminTestimonials struct {
	Testimonials []models.Testimonial `json:"testimonials"`
	Counts       TestimonialCounts    `json:"counts"`
}

func NewTestimonialService(db *gorm.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

func (s *TestimonialService) ListApproved(ctx context.Context) ([]models.Testimonial, error) {
	testimonials := []models.Testimonial{}
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.TestimonialStatusApproved).
		Order("created_at desc").
		Find(&testimonials).Error; err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

// ListAdmin returns testimonials of any status, newest first. Counts are
// always over the whole table so the moderation tabs stay stable.
func (s *TestimonialService) ListAdmin(ctx context.Context, filter TestimonialFilter) (*AdminTestimonials, error) {
	db := s.db.WithContext(ctx)
	query := db.Model(&models.Testimonial{})

	if status := strings.ToLower(strings.TrimSpace(filter.Status)); status != "" && status != "all" {
		if !models.TestimonialStatus(status).Valid() {
			return nil, newFieldError("status", i18n.KeyTestimonialInvalidStatus)
		}
		query = query.Where("status = ?", status)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		term := utils.ContainsPattern(search)
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(message) LIKE ? ESCAPE '\' OR LOWER(order_id) LIKE ? ESCAPE '\'`, term, term, term)
	}

	result := &AdminTestimonials{Testimonials: []models.Testimonial{}}
	if err := query.Order("created_at desc").Find(&result.Testimonials).Error; err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	var rows []struct {
		Status models.TestimonialStatus
		Count  int64
	}
	if err := db.Model(&models.Testimonial{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count testimonials: %w", err)
	}
	for _, row := range rows {
		result.Counts.All += row.Count
		switch row.Status {
		case models.TestimonialStatusPending:
			result.Counts.Pending = row.Count
		case models.TestimonialStatusApproved:
			result.Counts.Approved = row.Count
		case models.TestimonialStatusRejected:
			result.Counts.Rejected = row.Count
		}
	}

	return result, nil
}

func (s *TestimonialService) Create(ctx context.Context, userID *uuid.UUID, req *CreateTestimonialRequest) (*models.Testimonial, error) {
	testimonial := &models.Testimonial{
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		Message: strings.TrimSpace(req.Message),
		Rating:  req.Rating,
		OrderID: strings.TrimSpace(req.OrderID),
		Status:  models.TestimonialStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return testimonial, nil
}

// UpdateStatus moves between any of the three statuses.
func (s *TestimonialService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TestimonialStatus) (*models.Testimonial, error) {
	status = models.TestimonialStatus(strings.ToLower(string(status)))
	if !status.Valid() {
		return nil, newFieldError("status", i18n.KeyTestimonialInvalidStatus)
	}

	db := s.db.WithContext(ctx)
	var testimonial models.Testimonial
	if err := db.First(&testimonial, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := db.Model(&testimonial).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	testimonial.Status = status
	return &testimonial, nil
}
