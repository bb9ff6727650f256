package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tradeops/backend/internal/interfaces/http/dto"
)

// SetupValidator configures gin's binding validator to report field names
// from json/form tags instead of Go struct field names.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
}

// HandleValidationError writes a 400 response. Validator errors are broken
// down per field; anything else (malformed JSON, type mismatches) surfaces
// as a plain bad-request message.
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeBadRequest, err.Error(), requestID))
		return
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	c.JSON(http.StatusBadRequest,
		dto.NewValidationErrorResponse("Request validation failed", requestID, details))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "uuid":
		return "Must be a valid UUID"
	case "email":
		return "Must be a valid email address"
	default:
		return "Failed validation: " + e.Tag()
	}
}
