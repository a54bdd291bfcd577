package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"quiz-course/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

var (
	defaultValidator *Validator
	once             sync.Once
)

// NewValidator creates a validator that reports field names by their json tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Default returns the process-wide validator.
func Default() *Validator {
	once.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator
}

// Struct validates s and converts the first set of failures into a VALIDATION_ERROR.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidInputError(err.Error())
	}

	fields := make(map[string]interface{}, len(fieldErrs))
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Namespace()] = describe(fe)
		messages = append(messages, fmt.Sprintf("%s %s", fe.Namespace(), describe(fe)))
	}

	return domain.NewValidationError("request validation failed: " + strings.Join(messages, "; ")).
		WithContext("fields", fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
