package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so issues match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// New returns the shared validator instance.
func New() *validator.Validate {
	return validate
}

// Issue describes one field that failed validation.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues flattens a validation error into per-field messages. Errors that
// are not validation errors become a single issue without a field.
func Issues(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return issues
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid uuid"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
