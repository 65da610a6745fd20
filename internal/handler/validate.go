package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so messages match what
// the client sent, e.g. "destinations[0].startDate is required".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validateStruct runs the struct tags of in and folds every failure into a
// single domain.ErrValidation.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	msgs := make([]string, 0, len(valErrs))
	for _, fe := range valErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(f validator.FieldError) string {
	field := f.Namespace()
	// Drop the request struct name: "createCustomerRequest.name" → "name".
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch f.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(f.Param(), " ", ", "))
	case "min":
		switch f.Kind() {
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain at least %s item(s)", field, f.Param())
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", field, f.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, f.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, f.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, f.Tag())
	}
}
