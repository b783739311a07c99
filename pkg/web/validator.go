package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GetErrorMsg returns a readable message for the first field validation error.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]
	return field.Field() + fieldErrorMsg(field)
}

func fieldErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "email":
		return " must be a valid email address"
	case "alphanum":
		return " must contain only letters and numbers"
	case "min":
		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf(" must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf(" must be one of [%s]", fe.Param())
	case "topupamount":
		return " must be a valid amount between 1 and 1000"
	}

	return " is invalid"
}
