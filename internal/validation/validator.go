package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// Validator wraps a validator/v10 instance registered with the custom tags
// uuid_canonical, clock and caldate.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that reports json field names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("uuid_canonical", func(fl validator.FieldLevel) bool {
		return IsUUID(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return IsClockTime(fl.Field().String())
	})
	_ = v.RegisterValidation("caldate", func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates s and converts failures into a 400 DomainError whose
// details map each offending field to a message.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid request", nil)
	}

	fields := make(map[string]any, len(verrs))
	var missing []string
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	details := map[string]any{"fields": fields}
	if len(missing) > 0 {
		details["missingFields"] = missing
		return apperrors.NewValidationError("Missing required fields: "+strings.Join(missing, ", "), details)
	}
	return apperrors.NewValidationError("validation failed", details)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid_canonical":
		return "must be a valid UUID"
	case "clock":
		return "must be HH:MM or HH:MM:SS (24-hour)"
	case "caldate":
		return "must be a valid date (YYYY-MM-DD)"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.Join(oneOfValues(fe.Param()), ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gtfield":
		return "must be after " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

var oneOfParam = regexp.MustCompile(`'[^']*'|\S+`)

// oneOfValues splits a oneof parameter, honoring single-quoted values with spaces.
func oneOfValues(param string) []string {
	values := oneOfParam.FindAllString(param, -1)
	for i, v := range values {
		values[i] = strings.Trim(v, "'")
	}
	return values
}
