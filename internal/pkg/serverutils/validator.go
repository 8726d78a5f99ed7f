package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"teamchat-be/internal/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a DTO and converts the
// failures into a field-keyed validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make(map[string][]string)
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		details[field] = append(details[field], describeFailure(fe))
	}
	return apperror.ValidationWithDetails("Invalid data provided", details)
}

func describeFailure(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
