package validator

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DateLayout is the accepted calendar date form (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// ClockLayout is the accepted 24-hour time form (HH:MM).
	ClockLayout = "15:04"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report form field names, falling back to json names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Year 0 parses but has no calendar or DATE column equivalent.
	validate.RegisterValidation("booking_date", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil && d.Year() >= 1
	})

	validate.RegisterValidation("booking_time", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(ClockLayout, fl.Field().String())
		return err == nil
	})
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Check validates a struct and returns every failed rule in field order.
func Check(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Tag: "invalid", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	failures := Check(s)
	if len(failures) == 0 {
		return nil
	}
	errs := make(map[string]string, len(failures))
	for _, f := range failures {
		errs[f.Field] = f.Message
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long (max: " + fe.Param() + ")"
	case "booking_date":
		return "Invalid date, expected YYYY-MM-DD"
	case "booking_time":
		return "Invalid time, expected HH:MM"
	default:
		return "Invalid value"
	}
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
