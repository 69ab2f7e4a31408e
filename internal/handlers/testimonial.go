// internal/handlers/testimonial.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/services"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

type TestimonialHandler struct {
	testimonialService *services.TestimonialService
}

func NewTestimonialHandler(testimonialService *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{
		testimonialService: testimonialService,
	}
}

// GET /testimonials
func (h *TestimonialHandler) GetTestimonials(c *gin.Context) {
	testimonials, err := h.testimonialService.ListApproved(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, testimonials)
}

// GET /testimonials/admin?status=&search=
func (h *TestimonialHandler) GetAdminTestimonials(c *gin.Context) {
	result, err := h.testimonialService.ListAdmin(c.Request.Context(), services.TestimonialFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /testimonials
func (h *TestimonialHandler) CreateTestimonial(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateTestimonialRequest
	if !bindJSON(c, &req) {
		return
	}

	testimonial, err := h.testimonialService.Create(c.Request.Context(), optionalUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyTestimonialCreated),
		"testimonial": testimonial,
	})
}

// PUT /testimonials/:id/status
func (h *TestimonialHandler) UpdateTestimonialStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseID(c, i18n.KeyTestimonialNotFound)
	if !ok {
		return
	}

	var req services.UpdateTestimonialStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	testimonial, err := h.testimonialService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyTestimonialStatusUpdated),
		"testimonial": testimonial,
	})
}
