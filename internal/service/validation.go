package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// decimals validate as numbers so gte/lte tags apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return v
}

// validateStruct runs the struct tags of req and turns failures into a
// ValidationError listing every offending field.
func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return customError.WrapValidation("%v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return customError.WrapValidation("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s long", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// authorize fails with PermissionDenied unless actor holds one of roles.
func authorize(actor domain.Actor, action string, roles ...domain.Role) error {
	if actor.HasRole(roles...) {
		return nil
	}
	return customError.WrapPermissionDenied(string(actor.Role), action)
}

// authenticated accepts any known role.
func authenticated(actor domain.Actor, action string) error {
	return authorize(actor, action, domain.RoleAdmin, domain.RoleVideoManager, domain.RoleFinancial)
}
