package handlers

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/edushetra/edushetra-api/internal/models"
)

// ParseBindErrors converts a JSON binding failure into field errors. Field rules
// of the lead forms are checked by the services; what reaches here is a body
// that could not be decoded or a `binding` tag that failed.
func ParseBindErrors(err error) []models.FieldError {
	var details []models.FieldError

	var validationErrors validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &validationErrors):
		for _, fe := range validationErrors {
			details = append(details, models.FieldError{
				Field:   fe.Field(),
				Message: getErrorMessage(fe),
			})
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		details = append(details, models.FieldError{Field: field, Message: field + " must be a " + typeErr.Type.String()})
	case errors.As(err, &syntaxErr):
		details = append(details, models.FieldError{Field: "body", Message: "Malformed JSON"})
	default:
		details = append(details, models.FieldError{Field: "body", Message: "Invalid request body"})
	}

	return details
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must have at least " + fe.Param() + " items"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " items"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
