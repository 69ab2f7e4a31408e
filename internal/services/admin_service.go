// internal/services/admin_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/models"
)

const recentOrdersLimit = 5

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalProducts       int64                        `json:"totalProducts"`
	TotalCategories     int64                        `json:"totalCategories"`
	TotalUsers          int64                        `json:"totalUsers"`
	NewUsersThisMonth   int64                        `json:"newUsersThisMonth"`
	TotalOrders         int64                        `json:"totalOrders"`
	OrdersByStatus      map[models.OrderStatus]int64 `json:"ordersByStatus"`
	TotalRevenue        float64                      `json:"totalRevenue"`
	MonthlyRevenue      float64                      `json:"monthlyRevenue"`
	PendingTestimonials int64                        `json:"pendingTestimonials"`
	ActiveCoupons       int64                        `json:"activeCoupons"`
	RecentOrders        []models.Order               `json:"recentOrders"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats aggregates the admin overview. Revenue excludes
// cancelled orders.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AdminDashboardStats{
		OrdersByStatus: make(map[models.OrderStatus]int64, len(models.OrderStatuses)),
		RecentOrders:   []models.Order{},
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	counts := []struct {
		model interface{}
		dest  *int64
		where []interface{}
	}{
		{&models.Product{}, &stats.TotalProducts, nil},
		{&models.Category{}, &stats.TotalCategories, nil},
		{&models.User{}, &stats.TotalUsers, nil},
		{&models.User{}, &stats.NewUsersThisMonth, []interface{}{"created_at >= ?", monthStart}},
		{&models.Order{}, &stats.TotalOrders, nil},
		{&models.Testimonial{}, &stats.PendingTestimonials, []interface{}{"status = ?", models.TestimonialStatusPending}},
		{&models.Coupon{}, &stats.ActiveCoupons, []interface{}{"active = ?", true}},
	}
	for _, c := range counts {
		query := db.Model(c.model)
		if len(c.where) > 0 {
			query = query.Where(c.where[0], c.where[1:]...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	for _, status := range models.OrderStatuses {
		stats.OrdersByStatus[status] = 0
	}
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	for _, row := range rows {
		stats.OrdersByStatus[row.Status] = row.Count
	}

	if err := db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if err := db.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ?", models.OrderStatusCancelled, monthStart).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.MonthlyRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := db.Preload("User").
		Order("created_at desc").
		Limit(recentOrdersLimit).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	return stats, nil
}
