package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/edushetra/edushetra-api/internal/models"
)

// MobilePattern is a 10-digit Indian mobile number
const MobilePattern = `^[6-9]\d{9}$`

var mobileRe = regexp.MustCompile(MobilePattern)

// Errors is the ordered list of failed fields; empty means the record is valid
type Errors []models.FieldError

// Valid reports whether no field failed
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Get returns the message for a field
func (e Errors) Get(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// Error implements error so a failed validation can travel through error returns
func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator checks form records against their struct tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator with the form tags registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonName)

	// Registration only fails on an empty tag name or nil func
	_ = v.RegisterValidation("in_mobile", func(fl validator.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("accepted", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		return InEnum(fl.Param(), fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate runs every rule of every field of record, which must be one of the
// form request models, and returns all failures in field order.
func (v *Validator) Validate(record any) Errors {
	def, _ := definitionFor(record)

	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		field := baseField(fe.Field())
		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, models.FieldError{Field: field, Message: messageFor(def, field, fe)})
	}
	return out
}

// jsonName reports fields by the name the client uses
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// baseField strips the element index validator appends for dive errors
func baseField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

func messageFor(def *Definition, field string, fe validator.FieldError) string {
	if def != nil {
		if msg, ok := def.Messages[field]; ok {
			return msg
		}
	}
	return genericMessage(field, fe)
}

func genericMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "Select at least " + fe.Param()
		}
		return field + " must be at least " + fe.Param() + " characters"
	case "in_mobile":
		return "Invalid mobile number"
	case "accepted":
		return field + " must be accepted"
	case "enum":
		return field + " is not a valid choice"
	case "url":
		return "Invalid URL format"
	case "numeric":
		return field + " must be a number"
	default:
		return field + " is invalid"
	}
}
