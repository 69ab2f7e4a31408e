// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/shaivyah/storefront-backend/internal/cache"
	"github.com/shaivyah/storefront-backend/internal/config"
	_ "github.com/shaivyah/storefront-backend/internal/docs"
	"github.com/shaivyah/storefront-backend/internal/handlers"
	"github.com/shaivyah/storefront-backend/internal/middleware"
	"github.com/shaivyah/storefront-backend/internal/services"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

// Dependencies are the optional external integrations. A nil ProductCache
// disables caching, a nil Gateway disables online payment and a nil
// Notifier disables order emails.
type Dependencies struct {
	ProductCache *cache.ProductCache
	Gateway      services.PaymentGateway
	Notifier     services.OrderNotifier
}

func Initialize(db *gorm.DB, cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	productCache := deps.ProductCache
	if productCache == nil {
		productCache = cache.NewProductCache(nil, 0)
	}

	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(db, cfg)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, productCache)
	cartService := services.NewCartService(db)
	couponService := services.NewCouponService(db)
	orderService := services.NewOrderService(db, cfg, deps.Notifier)
	testimonialService := services.NewTestimonialService(db)
	paymentService := services.NewPaymentService(db, cfg, deps.Gateway)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	couponHandler := handlers.NewCouponHandler(couponService)
	orderHandler := handlers.NewOrderHandler(orderService)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	adminHandler := handlers.NewAdminHandler(adminService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	utils.SetJWTIssuer(cfg.JWT.Issuer)

	limiters := middleware.NewRateLimiters(cfg.RateLimit)
	auth := middleware.AuthRequired()
	admin := middleware.AdminRequired()

	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.Upload.MaxSizeMB+1) << 20

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.General.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  "1.0.0",
			"cache":    productCache.Enabled(),
			"payments": paymentService.Enabled(),
			"storage":  storageMode(storageService),
		})
	})

	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", limiters.Auth.Middleware(), authHandler.Register)
			authRoutes.POST("/login", limiters.Auth.Middleware(), authHandler.Login)
			authRoutes.GET("/me", auth, authHandler.Me)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", auth, admin, productHandler.CreateProduct)
			products.PUT("/:id", auth, admin, productHandler.UpdateProduct)
			products.DELETE("/:id", auth, admin, productHandler.DeleteProduct)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", auth, admin, categoryHandler.CreateCategory)
			categories.DELETE("/:id", auth, admin, categoryHandler.DeleteCategory)
		}

		cart := api.Group("/cart")
		cart.Use(auth)
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/add", cartHandler.AddItem)
			cart.PUT("/update", cartHandler.UpdateItem)
			cart.DELETE("/remove", cartHandler.RemoveItem)
			cart.DELETE("/clear", cartHandler.ClearCart)
		}

		orders := api.Group("/orders")
		orders.Use(auth)
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/my-orders", orderHandler.GetMyOrders)
			orders.GET("", admin, orderHandler.GetOrders)
			orders.PUT("/:id/status", admin, orderHandler.UpdateOrderStatus)
		}

		coupons := api.Group("/coupons")
		{
			coupons.GET("", middleware.OptionalAuth(), couponHandler.GetCoupons)
			coupons.POST("/apply", couponHandler.ApplyCoupon)
			coupons.POST("", auth, admin, couponHandler.CreateCoupon)
			coupons.DELETE("/:id", auth, admin, couponHandler.DeleteCoupon)
		}

		testimonials := api.Group("/testimonials")
		{
			testimonials.GET("", testimonialHandler.GetTestimonials)
			testimonials.GET("/admin", auth, admin, testimonialHandler.GetAdminTestimonials)
			testimonials.POST("", middleware.OptionalAuth(), testimonialHandler.CreateTestimonial)
			testimonials.PUT("/:id/status", auth, admin, testimonialHandler.UpdateTestimonialStatus)
		}

		payment := api.Group("/payment")
		payment.Use(auth)
		{
			payment.POST("/create", paymentHandler.CreatePayment)
			payment.POST("/verify", paymentHandler.VerifyPayment)
			payment.POST("/refund", admin, paymentHandler.RefundPayment)
		}

		api.POST("/upload", auth, admin, limiters.Upload.Middleware(), uploadHandler.UploadImages)

		adminRoutes := api.Group("/admin")
		adminRoutes.Use(auth, admin)
		{
			adminRoutes.GET("/stats", adminHandler.GetDashboardStats)
		}
	}

	// Local uploads are served by the API itself.
	if !storageService.UsesS3() {
		r.Static("/uploads", cfg.Upload.LocalDir)
	}

	return r, nil
}

func storageMode(s *services.StorageService) string {
	if s.UsesS3() {
		return "s3"
	}
	return "local"
}
