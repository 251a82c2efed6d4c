package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/ccmg/qbank-admin/internal/response"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(v, trans)
	}
}

// TranslateErrors takes a binding/validation error and returns field-level
// detail entries in the order validation reported them. If the error is
// not a validation error (e.g. a JSON syntax error), a single generic
// detail is returned.
func TranslateErrors(err error) []response.FieldDetail {
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]response.FieldDetail, 0, len(ve))
		for _, fe := range ve {
			details = append(details, response.FieldDetail{
				Field:   fe.Field(),
				Message: fe.Translate(trans),
			})
		}
		return details
	}

	return []response.FieldDetail{{Message: err.Error()}}
}

// Bind binds and validates the request body into dst.
// Returns nil on success or translated field details on failure.
func Bind(c *gin.Context, dst interface{}) []response.FieldDetail {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
