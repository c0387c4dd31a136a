package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/TheDigger_Go/internal/reconcile"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator initializes the global validator
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("playername", validatePlayerName)
		v.RegisterTagNameFunc(jsonFieldName)
		validate = &Validator{validate: v}
	})
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field -> message map
// keyed by JSON field names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = ValidationMsgFormat
		return errs
	}

	for _, e := range validationErrors {
		field := e.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch e.Tag() {
		case "required":
			errs[field] = ValidationMsgRequired
		case "playername":
			errs[field] = ValidationMsgPlayerName
		case "max":
			errs[field] = fmt.Sprintf(ValidationMsgMax, e.Param())
		case "min":
			errs[field] = fmt.Sprintf(ValidationMsgMin, e.Param())
		case "gte":
			errs[field] = fmt.Sprintf(ValidationMsgGte, e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf(ValidationMsgOneOf, e.Param())
		default:
			errs[field] = ValidationMsgInvalid
		}
	}

	return errs
}

// validatePlayerName applies the name registry's rules. Empty passes; pair
// with required when the field is mandatory.
func validatePlayerName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	_, err := reconcile.ValidateName(name)
	return err == nil
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
