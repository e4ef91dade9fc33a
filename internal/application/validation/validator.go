package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los errores reportan el nombre JSON del campo, no el del struct.
		validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return sf.Name
			}
			return name
		})
		// decimal.Decimal se valida como número (gte=0 sobre precios).
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		// Un null explícito se valida como vacío (omitempty lo salta).
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if n, ok := field.Interface().(dto.NullableString); ok && n.Value != nil {
				return *n.Value
			}
			return ""
		}, dto.NullableString{})
		// maxbytes limita la longitud en bytes; max cuenta runas. bcrypt rechaza más de 72 bytes.
		_ = validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= limit
		})
	})
	return validate
}

// Struct valida v según sus tags `validate`. Devuelve *domain.ValidationError con un
// FieldError por campo inválido, o nil si v es válido.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: v no es un struct; es un error de programación.
		return fmt.Errorf("validation: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe.Tag(), fe.Param()),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldPath quita el nombre del struct raíz del namespace ("RegisterRequest.email" -> "email").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok && rest != "" {
		return rest
	}
	return fe.Field()
}

func message(rule, param string) string {
	switch rule {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		return "debe tener al menos " + param + " caracteres"
	case "max":
		return "debe tener como máximo " + param + " caracteres"
	case "gte":
		return "debe ser mayor o igual a " + param
	case "lte":
		return "debe ser menor o igual a " + param
	case "maxbytes":
		return "debe ocupar como máximo " + param + " bytes"
	case "gt":
		return "debe ser mayor a " + param
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(param, " ", ", ")
	case "uuid":
		return "debe ser un UUID válido"
	case "url":
		return "debe ser una URL válida"
	default:
		if param != "" {
			return fmt.Sprintf("no cumple la regla %s (%s)", rule, param)
		}
		return "no cumple la regla " + rule
	}
}
