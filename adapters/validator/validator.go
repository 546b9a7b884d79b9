// Package validator is a high-level wrapper for go-playground/validator.
package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates tagged structs and single values.
type Validator struct {
	validator *validator.Validate
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns a map of field paths to
// error messages. A nil map means the struct is valid.
func (v *Validator) ValidateStruct(s interface{}) map[string]string {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "unexpected validation error"}
	}

	errorMap := make(map[string]string)
	for _, fieldError := range validationErrors {
		errorMap[fieldError.Namespace()] = v.getErrorMessage(fieldError)
	}
	return errorMap
}

// ValidateField validates a single value against a tag expression.
func (v *Validator) ValidateField(field interface{}, tag string) string {
	err := v.validator.Var(field, tag)
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "unexpected validation error"
	}
	if len(validationErrors) > 0 {
		return v.getErrorMessage(validationErrors[0])
	}
	return "validation error"
}

// Describe flattens a ValidateStruct result into one deterministic message,
// suitable for an error string.
func Describe(errorMap map[string]string) string {
	if len(errorMap) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errorMap))
	for field, msg := range errorMap {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// getErrorMessage generates a user-friendly error message from a FieldError.
func (v *Validator) getErrorMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldError.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldError.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fieldError.Field(), fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fieldError.Field(), fieldError.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldError.Field(), fieldError.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fieldError.Field(), fieldError.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fieldError.Field(), fieldError.Param())
	default:
		return fmt.Sprintf("invalid %s", fieldError.Field())
	}
}
