package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/ecommerce-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar errores con el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate aplica las reglas `validate:"..."` del struct. Los errores envuelven domain.ErrInvalidInput.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(parts, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es obligatorio"
	case "email":
		return fe.Field() + " debe ser un email válido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser >= %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser > %s", fe.Field(), fe.Param())
	default:
		return fe.Field() + " inválido (" + fe.Tag() + ")"
	}
}
