// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shaivyah/storefront-backend/internal/i18n"
)

var (
	validate *validator.Validate

	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("pincode", validatePincode)
	validate.RegisterValidation("phone", validatePhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a tag, e.g. "required" or "pincode".
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validatePincode(fl validator.FieldLevel) bool {
	return pincodePattern.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(lang string, err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(lang, e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(lang string, e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return i18n.T(lang, i18n.KeyValidationRequired, field)
	case "email":
		return i18n.T(lang, i18n.KeyValidationEmail)
	case "min":
		if e.Kind() == reflect.String {
			return i18n.T(lang, i18n.KeyValidationTooShort, field, e.Param())
		}
		return i18n.T(lang, i18n.KeyValidationRange, field)
	case "max":
		if e.Kind() == reflect.String {
			return i18n.T(lang, i18n.KeyValidationTooLong, field, e.Param())
		}
		return i18n.T(lang, i18n.KeyValidationRange, field)
	case "gt", "gte", "lt", "lte":
		return i18n.T(lang, i18n.KeyValidationRange, field)
	case "oneof":
		return i18n.T(lang, i18n.KeyValidationOneOf, field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "pincode":
		return i18n.T(lang, i18n.KeyAddressInvalidPincode)
	case "phone":
		return i18n.T(lang, i18n.KeyAddressInvalidPhone)
	default:
		return i18n.T(lang, i18n.KeyValidationInvalid, field)
	}
}
