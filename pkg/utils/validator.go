package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	defaultValidator = validator.New()
	iso3Pattern      = regexp.MustCompile(`^[A-Z]{3}$`)
	matchFirstCap    = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap      = regexp.MustCompile("([a-z0-9])([A-Z])")
)

func init() {
	// Register custom validation functions
	_ = defaultValidator.RegisterValidation("iso3", func(fl validator.FieldLevel) bool {
		return iso3Pattern.MatchString(fl.Field().String())
	})
}

// FieldError is one failed struct-tag rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// ValidateStruct checks s against its `validate` tags and returns the
// failures in field order. A nil slice means s is valid.
func ValidateStruct(s interface{}) []FieldError {
	err := defaultValidator.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, FieldError{
			Field:   toSnakeCase(fe.Field()),
			Tag:     fe.Tag(),
			Message: formatValidationError(fe),
		})
	}
	return out
}

// formatValidationError creates a user-friendly error message for a validation error.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "iso3":
		return "must be a three-letter ISO country code"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

// toSnakeCase converts a string from CamelCase to snake_case.
func toSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}
