// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("lender_slug", validateLenderSlug)
	validate.RegisterValidation("submission_status", validateSubmissionStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

var lenderSlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Lender ids are lowercase slugs like "rapid-capital".
func validateLenderSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	if len(slug) < 2 || len(slug) > 64 {
		return false
	}
	return lenderSlugPattern.MatchString(slug)
}

func validateSubmissionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "under_review", "approved", "declined", "funded":
		return true
	}
	return false
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must have at least " + e.Param() + " entries or characters"
	case "max":
		return e.Field() + " must have at most " + e.Param() + " entries or characters"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "lender_slug":
		return "Lender id must be a lowercase slug like rapid-capital"
	case "submission_status":
		return "Status must be one of under_review, approved, declined, funded"
	default:
		return e.Field() + " is invalid"
	}
}
