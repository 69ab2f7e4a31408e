// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/models"
	"github.com/shaivyah/storefront-backend/internal/services"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

var notFoundKeys = map[error]string{
	services.ErrProductNotFound:     i18n.KeyProductNotFound,
	services.ErrCategoryNotFound:    i18n.KeyCategoryNotFound,
	services.ErrOrderNotFound:       i18n.KeyOrderNotFound,
	services.ErrCouponNotFound:      i18n.KeyCouponNotFound,
	services.ErrTestimonialNotFound: i18n.KeyTestimonialNotFound,
	services.ErrUserNotFound:        i18n.KeyUserNotFound,
	services.ErrCartItemNotFound:    i18n.KeyCartItemNotFound,
}

var conflictKeys = map[error]string{
	services.ErrEmailTaken:     i18n.KeyAuthUserExists,
	services.ErrCategoryExists: i18n.KeyCategoryExists,
	services.ErrCategoryInUse:  i18n.KeyCategoryInUse,
	services.ErrCouponExists:   i18n.KeyCouponExists,
}

var badRequestKeys = map[error]string{
	services.ErrInvalidCoupon:   i18n.KeyCouponInvalid,
	services.ErrInvalidFileType: i18n.KeyFileInvalidType,
	services.ErrFileTooLarge:    i18n.KeyFileTooLarge,
}

// handleServiceError maps service errors onto the response envelope.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var fieldErr *services.FieldError
	if errors.As(err, &fieldErr) {
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", i18n.T(lang, fieldErr.Key), gin.H{
			"field": fieldErr.Field,
		})
		return
	}

	for target, key := range notFoundKeys {
		if errors.Is(err, target) {
			utils.NotFoundResponse(c, key)
			return
		}
	}
	for target, key := range conflictKeys {
		if errors.Is(err, target) {
			utils.ConflictResponse(c, i18n.T(lang, key))
			return
		}
	}
	for target, key := range badRequestKeys {
		if errors.Is(err, target) {
			utils.BadRequestResponse(c, i18n.T(lang, key), nil)
			return
		}
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthForbidden))
	case errors.Is(err, services.ErrPaymentNotConfigured):
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyPaymentNotConfigured))
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes and validates the body, writing the error response
// itself when it returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(lang, utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}

	return true
}

// parseID reads the :id path param. Ids that are not UUIDs cannot exist,
// so they get the resource's not-found response.
func parseID(c *gin.Context, notFoundKey string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, notFoundKey)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user's id, answering 401 when
// the context carries none.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	if raw, ok := utils.GetUserIDFromContext(c); ok {
		if id, err := uuid.Parse(raw); err == nil {
			return id, true
		}
	}
	utils.UnauthorizedResponse(c, "")
	return uuid.Nil, false
}

// optionalUserID is for routes behind OptionalAuth.
func optionalUserID(c *gin.Context) *uuid.UUID {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func isAdmin(c *gin.Context) bool {
	role, ok := utils.GetUserRoleFromContext(c)
	return ok && role == string(models.UserRoleAdmin)
}
