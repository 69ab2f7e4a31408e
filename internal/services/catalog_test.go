package services

import (
	"regexp"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/shaivyah/storefront-backend/internal/cache"
	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

func (s *ServiceSuite) TestAuthRegisterAndLogin() {
	resp, err := s.auth.Register(s.ctx, &RegisterRequest{Name: " Asha ", Email: "Asha@Example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.Equal("asha@example.com", resp.User.Email)
	s.Equal("Asha", resp.User.Name)
	s.Equal("Bearer", resp.TokenType)
	s.Equal(3600, resp.ExpiresIn)

	claims, err := utils.ValidateJWT(resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.User.ID.String(), claims.UserID)
	s.Equal("user", claims.Role)

	_, err = s.auth.Register(s.ctx, &RegisterRequest{Name: "Other", Email: "asha@example.com ", Password: "secret123"})
	s.ErrorIs(err, ErrEmailTaken)

	_, err = s.auth.Login(s.ctx, &LoginRequest{Email: "asha@example.com", Password: "wrong-password"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.auth.Login(s.ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	s.ErrorIs(err, ErrInvalidCredentials)

	login, err := s.auth.Login(s.ctx, &LoginRequest{Email: "ASHA@example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.NotNil(login.User.LastLoginAt)

	user, err := s.auth.GetUserByID(s.ctx, login.User.ID)
	s.Require().NoError(err)
	s.NotNil(user.LastLoginAt)

	_, err = s.auth.GetUserByID(s.ctx, uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ServiceSuite) TestCreateProductGeneratesProductID() {
	pattern := regexp.MustCompile(`^PRD[A-Z0-9]{9}$`)

	first := s.createProduct("saree", 4999, 10)
	second := s.createProduct("kurti", 1299, 0)

	s.Regexp(pattern, first.ProductID)
	s.Regexp(pattern, second.ProductID)
	s.NotEqual(first.ProductID, second.ProductID)
	s.NotEqual(uuid.Nil, first.ID)
}

func (s *ServiceSuite) TestCreateProductResolvesCategory() {
	category, err := s.categories.Create(s.ctx, &CreateCategoryRequest{Name: "Lehengas"})
	s.Require().NoError(err)

	byRef, err := s.products.CreateProduct(s.ctx, &CreateProductRequest{
		Name:        "Bridal lehenga",
		Price:       15000,
		Category:    "ignored",
		CategoryRef: &category.ID,
		Images:      []string{"a.jpg"},
	})
	s.Require().NoError(err)
	s.Equal("Lehengas", byRef.Category)
	s.Require().NotNil(byRef.CategoryRef)
	s.Equal(category.ID, *byRef.CategoryRef)

	byName, err := s.products.CreateProduct(s.ctx, &CreateProductRequest{
		Name:     "Party lehenga",
		Price:    9000,
		Category: "lehengas",
		Images:   []string{"b.jpg"},
	})
	s.Require().NoError(err)
	s.Require().NotNil(byName.CategoryRef)
	s.Equal("Lehengas", byName.Category)

	missing := uuid.New()
	_, err = s.products.CreateProduct(s.ctx, &CreateProductRequest{
		Name:        "Orphan",
		Price:       100,
		CategoryRef: &missing,
		Images:      []string{"c.jpg"},
	})
	s.requireFieldError(err, "categoryRef", i18n.KeyCategoryNotFound)
}

func (s *ServiceSuite) TestSearchProducts() {
	silk := s.createProduct("Silk saree", 5000, 0)
	s.createProduct("Cotton kurti", 800, 0)
	s.createProduct("Silk dupatta", 1500, 0)
	_, err := s.products.UpdateProduct(s.ctx, silk.ID, &UpdateProductRequest{Category: strPtr("Festive")})
	s.Require().NoError(err)

	products, total, err := s.products.SearchProducts(s.ctx, ProductSearchParams{Query: "SILK"})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Len(products, 2)

	for _, q := range []string{"%", "_ilk"} {
		products, _, err = s.products.SearchProducts(s.ctx, ProductSearchParams{Query: q})
		s.Require().NoError(err)
		s.Empty(products, q)
	}

	lo, hi := 1000.0, 2000.0
	products, _, err = s.products.SearchProducts(s.ctx, ProductSearchParams{PriceMin: &lo, PriceMax: &hi})
	s.Require().NoError(err)
	s.Require().Len(products, 1)
	s.Equal("Silk dupatta", products[0].Name)

	products, _, err = s.products.SearchProducts(s.ctx, ProductSearchParams{Category: "festive"})
	s.Require().NoError(err)
	s.Require().Len(products, 1)
	s.Equal(silk.ID, products[0].ID)

	products, total, err = s.products.SearchProducts(s.ctx, ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 2, Limit: 2, Enabled: true},
	})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Len(products, 1)
}

func (s *ServiceSuite) TestUpdateAndDeleteProduct() {
	product := s.createProduct("Anarkali", 3000, 5)

	updated, err := s.products.UpdateProduct(s.ctx, product.ID, &UpdateProductRequest{
		Price:  floatPtr(3200),
		Images: &[]string{"new.jpg"},
	})
	s.Require().NoError(err)
	s.Equal(3200.0, updated.Price)
	s.Equal(5.0, updated.Discount)
	s.Equal([]string{"new.jpg"}, []string(updated.Images))
	s.Equal(product.ProductID, updated.ProductID)

	s.Require().NoError(s.products.DeleteProduct(s.ctx, product.ID))
	_, err = s.products.GetProduct(s.ctx, product.ID)
	s.ErrorIs(err, ErrProductNotFound)
	s.ErrorIs(s.products.DeleteProduct(s.ctx, product.ID), ErrProductNotFound)
}

func (s *ServiceSuite) TestGetProductUsesCache() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.T().Cleanup(func() { client.Close() })
	products := NewProductService(s.db, cache.NewProductCache(client, time.Minute))

	product := s.createProduct("Cached saree", 2000, 0)

	got, err := products.GetProduct(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(product.ProductID, got.ProductID)
	s.True(mr.Exists("product:" + product.ID.String()))

	_, err = products.UpdateProduct(s.ctx, product.ID, &UpdateProductRequest{Name: strPtr("Renamed saree")})
	s.Require().NoError(err)
	s.False(mr.Exists("product:" + product.ID.String()))

	got, err = products.GetProduct(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal("Renamed saree", got.Name)

	missing := uuid.New()
	_, err = products.GetProduct(s.ctx, missing)
	s.ErrorIs(err, ErrProductNotFound)
	s.True(mr.Exists("product:" + missing.String()))
	_, err = products.GetProduct(s.ctx, missing)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ServiceSuite) TestCategoryLifecycle() {
	category, err := s.categories.Create(s.ctx, &CreateCategoryRequest{Name: "Sarees"})
	s.Require().NoError(err)

	_, err = s.categories.Create(s.ctx, &CreateCategoryRequest{Name: "SAREES"})
	s.ErrorIs(err, ErrCategoryExists)

	_, err = s.products.CreateProduct(s.ctx, &CreateProductRequest{
		Name:        "Kanjivaram",
		Price:       8000,
		CategoryRef: &category.ID,
		Images:      []string{"k.jpg"},
	})
	s.Require().NoError(err)
	s.ErrorIs(s.categories.Delete(s.ctx, category.ID), ErrCategoryInUse)

	empty, err := s.categories.Create(s.ctx, &CreateCategoryRequest{Name: "Dupattas"})
	s.Require().NoError(err)
	s.Require().NoError(s.categories.Delete(s.ctx, empty.ID))
	_, err = s.categories.Get(s.ctx, empty.ID)
	s.ErrorIs(err, ErrCategoryNotFound)

	list, err := s.categories.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Sarees", list[0].Name)
}

func (s *ServiceSuite) TestCartTotals() {
	user := s.createUser("cart@example.com")
	saree := s.createProduct("saree", 1000, 20)
	kurti := s.createProduct("kurti", 500, 0)

	_, err := s.cart.AddItem(s.ctx, user.ID, &AddToCartRequest{ProductID: saree.ID})
	s.Require().NoError(err)
	view, err := s.cart.AddItem(s.ctx, user.ID, &AddToCartRequest{ProductID: saree.ID, Quantity: 1})
	s.Require().NoError(err)
	s.Require().Len(view.Products, 1)
	s.Equal(2, view.Products[0].Quantity)
	s.Equal(1600.0, view.Total)

	view, err = s.cart.AddItem(s.ctx, user.ID, &AddToCartRequest{ProductID: kurti.ID, Quantity: 1})
	s.Require().NoError(err)
	s.Equal(2100.0, view.Total)

	require.NoError(s.T(), s.products.DeleteProduct(s.ctx, kurti.ID))
	view, err = s.cart.GetCart(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Len(view.Products, 2)
	s.Equal(1600.0, view.Total)

	view, err = s.cart.UpdateItem(s.ctx, user.ID, &UpdateCartRequest{ProductID: saree.ID, Quantity: 3})
	s.Require().NoError(err)
	s.Equal(2400.0, view.Total)

	_, err = s.cart.UpdateItem(s.ctx, user.ID, &UpdateCartRequest{ProductID: uuid.New(), Quantity: 1})
	s.ErrorIs(err, ErrCartItemNotFound)

	_, err = s.cart.AddItem(s.ctx, user.ID, &AddToCartRequest{ProductID: uuid.New(), Quantity: 1})
	s.ErrorIs(err, ErrProductNotFound)

	view, err = s.cart.RemoveItem(s.ctx, user.ID, kurti.ID)
	s.Require().NoError(err)
	s.Len(view.Products, 1)
	_, err = s.cart.RemoveItem(s.ctx, user.ID, kurti.ID)
	s.NoError(err)

	s.Require().NoError(s.cart.ClearCart(s.ctx, user.ID))
	view, err = s.cart.GetCart(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(view.Products)
	s.Zero(view.Total)
}

func (s *ServiceSuite) TestCouponsAreCaseInsensitive() {
	s.createCoupon("FEST10", 10)

	_, err := s.coupons.CreateCoupon(s.ctx, &CreateCouponRequest{Code: "fest10", DiscountPct: 5})
	s.ErrorIs(err, ErrCouponExists)

	applied, err := s.coupons.ApplyCoupon(s.ctx, &ApplyCouponRequest{Code: "fest10", Subtotal: 1600})
	s.Require().NoError(err)
	s.Equal("FEST10", applied.Code)
	s.Equal(1440.0, applied.Total)
	s.Equal(160.0, applied.Discount)

	_, err = s.coupons.ApplyCoupon(s.ctx, &ApplyCouponRequest{Code: "NOPE", Subtotal: 1600})
	s.ErrorIs(err, ErrInvalidCoupon)

	inactive := false
	off, err := s.coupons.CreateCoupon(s.ctx, &CreateCouponRequest{Code: "OLD50", DiscountPct: 50, Active: &inactive})
	s.Require().NoError(err)
	s.Equal("website", off.SourceTag)
	_, err = s.coupons.ApplyCoupon(s.ctx, &ApplyCouponRequest{Code: "OLD50", Subtotal: 100})
	s.ErrorIs(err, ErrInvalidCoupon)

	active, err := s.coupons.ListCoupons(s.ctx, false)
	s.Require().NoError(err)
	s.Len(active, 1)
	all, err := s.coupons.ListCoupons(s.ctx, true)
	s.Require().NoError(err)
	s.Len(all, 2)

	s.Require().NoError(s.coupons.DeleteCoupon(s.ctx, off.ID))
	s.ErrorIs(s.coupons.DeleteCoupon(s.ctx, off.ID), ErrCouponNotFound)
}

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
