package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
)

func (s *ServiceSuite) TestTestimonialModeration() {
	user := s.createUser("reviewer@example.com")

	pending, err := s.testimonial.Create(s.ctx, &user.ID, &CreateTestimonialRequest{
		Name:    "Asha",
		Message: "Lovely saree, fast delivery",
		Rating:  5,
		OrderID: "ORD-1",
	})
	s.Require().NoError(err)
	s.Equal(models.TestimonialStatusPending, pending.Status)

	anon, err := s.testimonial.Create(s.ctx, nil, &CreateTestimonialRequest{Name: "Ravi", Message: "Colour was off", Rating: 2})
	s.Require().NoError(err)
	s.Nil(anon.UserID)

	public, err := s.testimonial.ListApproved(s.ctx)
	s.Require().NoError(err)
	s.Empty(public)

	approved, err := s.testimonial.UpdateStatus(s.ctx, pending.ID, "Approved")
	s.Require().NoError(err)
	s.Equal(models.TestimonialStatusApproved, approved.Status)
	_, err = s.testimonial.UpdateStatus(s.ctx, anon.ID, models.TestimonialStatusRejected)
	s.Require().NoError(err)

	public, err = s.testimonial.ListApproved(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(public, 1)
	s.Equal(pending.ID, public[0].ID)

	reverted, err := s.testimonial.UpdateStatus(s.ctx, pending.ID, models.TestimonialStatusPending)
	s.Require().NoError(err)
	s.Equal(models.TestimonialStatusPending, reverted.Status)

	_, err = s.testimonial.UpdateStatus(s.ctx, pending.ID, "hidden")
	s.requireFieldError(err, "status", i18n.KeyTestimonialInvalidStatus)
	_, err = s.testimonial.UpdateStatus(s.ctx, uuid.New(), models.TestimonialStatusApproved)
	s.ErrorIs(err, ErrTestimonialNotFound)
}

func (s *ServiceSuite) TestTestimonialAdminListing() {
	for _, t := range []models.Testimonial{
		{Name: "Asha", Message: "Beautiful weave", Rating: 5, Status: models.TestimonialStatusApproved},
		{Name: "Ravi", Message: "Late delivery", Rating: 3, OrderID: "ORD-77", Status: models.TestimonialStatusPending},
		{Name: "Meera", Message: "Great fit", Rating: 4, Status: models.TestimonialStatusPending},
		{Name: "Kiran", Message: "Not as shown", Rating: 1, Status: models.TestimonialStatusRejected},
	} {
		t := t
		s.Require().NoError(s.db.Create(&t).Error)
	}

	all, err := s.testimonial.ListAdmin(s.ctx, TestimonialFilter{})
	s.Require().NoError(err)
	s.Len(all.Testimonials, 4)
	s.Equal(TestimonialCounts{All: 4, Pending: 2, Approved: 1, Rejected: 1}, all.Counts)

	pending, err := s.testimonial.ListAdmin(s.ctx, TestimonialFilter{Status: "Pending"})
	s.Require().NoError(err)
	s.Len(pending.Testimonials, 2)
	s.Equal(int64(4), pending.Counts.All)

	search, err := s.testimonial.ListAdmin(s.ctx, TestimonialFilter{Search: "ord-77"})
	s.Require().NoError(err)
	s.Require().Len(search.Testimonials, 1)
	s.Equal("Ravi", search.Testimonials[0].Name)

	search, err = s.testimonial.ListAdmin(s.ctx, TestimonialFilter{Status: "all", Search: "GREAT"})
	s.Require().NoError(err)
	s.Require().Len(search.Testimonials, 1)
	s.Equal("Meera", search.Testimonials[0].Name)

	search, err = s.testimonial.ListAdmin(s.ctx, TestimonialFilter{Search: "%"})
	s.Require().NoError(err)
	s.Empty(search.Testimonials)

	_, err = s.testimonial.ListAdmin(s.ctx, TestimonialFilter{Status: "spam"})
	s.requireFieldError(err, "status", i18n.KeyTestimonialInvalidStatus)
}

func (s *ServiceSuite) TestDashboardStats() {
	user := s.createUser("stats@example.com")
	saree := s.createProduct("saree", 1000, 0)
	kurti := s.createProduct("kurti", 500, 0)
	_, err := s.categories.Create(s.ctx, &CreateCategoryRequest{Name: "Kurtis"})
	s.Require().NoError(err)
	s.createCoupon("FEST10", 10)
	_, err = s.testimonial.Create(s.ctx, nil, &CreateTestimonialRequest{Name: "Asha", Message: "Pending review", Rating: 4})
	s.Require().NoError(err)

	s.placeOrder(user.ID, "COD", OrderItemRequest{Product: saree.ID, Qty: 2})
	cancelled := s.placeOrder(user.ID, "COD", OrderItemRequest{Product: kurti.ID, Qty: 1})
	_, err = s.orders.UpdateStatus(s.ctx, cancelled.ID, models.OrderStatusCancelled)
	s.Require().NoError(err)

	stats, err := s.admin.GetDashboardStats(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(2, stats.TotalProducts)
	s.EqualValues(1, stats.TotalCategories)
	s.EqualValues(1, stats.TotalUsers)
	s.EqualValues(1, stats.NewUsersThisMonth)
	s.EqualValues(2, stats.TotalOrders)
	s.EqualValues(1, stats.OrdersByStatus[models.OrderStatusPending])
	s.EqualValues(1, stats.OrdersByStatus[models.OrderStatusCancelled])
	s.EqualValues(0, stats.OrdersByStatus[models.OrderStatusShipped])
	s.Len(stats.OrdersByStatus, len(models.OrderStatuses))
	s.Equal(2000.0, stats.TotalRevenue)
	s.Equal(2000.0, stats.MonthlyRevenue)
	s.EqualValues(1, stats.PendingTestimonials)
	s.EqualValues(1, stats.ActiveCoupons)
	s.Len(stats.RecentOrders, 2)
}

func (s *ServiceSuite) TestNotificationRendersOrderEmail() {
	notifications := NewNotificationService(s.cfg)
	var to, subject, body string
	notifications.send = func(t, sub, b string) error {
		to, subject, body = t, sub, b
		return nil
	}

	order := &models.Order{
		Items:           models.OrderItems{{Name: "Banarasi saree", Qty: 2, Price: 1000, Discount: 20}},
		Subtotal:        1600,
		CouponCode:      "FEST10",
		Total:           1440,
		PaymentMethod:   models.PaymentMethodCOD,
		Status:          models.OrderStatusPending,
		ShippingAddress: validAddress(),
	}
	order.ID = uuid.New()
	user := &models.User{Name: "Asha", Email: "asha@example.com"}

	s.Require().NoError(notifications.OrderPlaced(order, user))
	s.Equal("asha@example.com", to)
	s.Equal("Your Shaivyah order "+order.ID.String(), subject)
	s.Contains(body, "Banarasi saree")
	s.Contains(body, "x2")
	s.Contains(body, "800")
	s.Contains(body, "1440")
	s.Contains(body, "FEST10")
	s.Contains(body, "http://localhost:5173/my-orders")

	order.Status = models.OrderStatusShipped
	s.Require().NoError(notifications.OrderStatusChanged(order, user))
	s.Equal("Order "+order.ID.String()+" is now Shipped", subject)

	// Without SMTP the real sender only logs.
	s.NoError(NewNotificationService(s.cfg).OrderPlaced(order, user))
}

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}
	webpHeader = []byte("RIFF\x24\x00\x00\x00WEBPVP8 ")
)

func (s *ServiceSuite) uploadHeaders(files map[string][]byte, order ...string) []*multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range order {
		part, err := writer.CreateFormFile("images", name)
		s.Require().NoError(err)
		_, err = part.Write(files[name])
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	s.Require().NoError(req.ParseMultipartForm(32 << 20))
	return req.MultipartForm.File["images"]
}

func (s *ServiceSuite) TestUploadImagesToLocalDisk() {
	storage, err := NewStorageService(s.cfg)
	s.Require().NoError(err)
	s.False(storage.UsesS3())

	headers := s.uploadHeaders(map[string][]byte{
		"front.png": pngHeader,
		"back.jpg":  jpegHeader,
		"side.webp": webpHeader,
	}, "front.png", "back.jpg", "side.webp")

	urls, err := storage.UploadImages(s.ctx, headers)
	s.Require().NoError(err)
	s.Require().Len(urls, 3)

	wantExt := []string{".png", ".jpg", ".webp"}
	for i, url := range urls {
		s.True(strings.HasPrefix(url, "http://localhost:5000/uploads/products/"), url)
		s.True(strings.HasSuffix(url, wantExt[i]), url)

		rel := strings.TrimPrefix(url, "http://localhost:5000/uploads/")
		data, err := os.ReadFile(filepath.Join(s.cfg.Upload.LocalDir, filepath.FromSlash(rel)))
		s.Require().NoError(err)
		s.NotEmpty(data)
	}
}

func (s *ServiceSuite) TestUploadImagesRejectsBadFiles() {
	storage, err := NewStorageService(s.cfg)
	s.Require().NoError(err)

	headers := s.uploadHeaders(map[string][]byte{
		"ok.png":   pngHeader,
		"fake.png": []byte("not really an image"),
	}, "ok.png", "fake.png")
	_, err = storage.UploadImages(s.ctx, headers)
	s.ErrorIs(err, ErrInvalidFileType)

	entries, _ := os.ReadDir(s.cfg.Upload.LocalDir)
	s.Empty(entries)

	big := append(append([]byte{}, pngHeader...), make([]byte, 1024*1024)...)
	headers = s.uploadHeaders(map[string][]byte{"big.png": big}, "big.png")
	_, err = storage.UploadImages(s.ctx, headers)
	s.ErrorIs(err, ErrFileTooLarge)
}

func (s *ServiceSuite) TestDetectImageType() {
	cases := []struct {
		data []byte
		want string
		ok   bool
	}{
		{pngHeader, "image/png", true},
		{jpegHeader, "image/jpeg", true},
		{[]byte("GIF89a\x01\x00"), "image/gif", true},
		{webpHeader, "image/webp", true},
		{[]byte("RIFF\x24\x00\x00\x00WAVEfmt "), "", false},
		{[]byte("GIF"), "", false},
		{nil, "", false},
	}
	for _, tc := range cases {
		got, _, ok := detectImageType(tc.data)
		s.Equal(tc.ok, ok)
		s.Equal(tc.want, got)
	}
}

func (s *ServiceSuite) TestS3URL() {
	cfg := *s.cfg
	cfg.AWS.S3Bucket = "shaivyah-media"
	cfg.AWS.Region = "ap-south-1"
	storage := &StorageService{config: &cfg}
	s.Equal("https://shaivyah-media.s3.ap-south-1.amazonaws.com/products/a.jpg", storage.getS3URL("products/a.jpg"))

	cfg.AWS.CloudFrontURL = "https://cdn.shaivyah.com/"
	s.Equal("https://cdn.shaivyah.com/products/a.jpg", storage.getS3URL("products/a.jpg"))
}
