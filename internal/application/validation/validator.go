package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devostorange/internal/domain"
)

// Error errores de formulario por campo (nombre JSON → mensaje).
// errors.Is(err, domain.ErrInvalidInput) es verdadero.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Field mensaje del campo indicado ("" si es válido).
func (e *Error) Field(name string) string {
	return e.Fields[name]
}

// Errors mismo contenido con la forma de domain.APIError.Errors.
func (e *Error) Errors() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for k, v := range e.Fields {
		out[k] = []string{v}
	}
	return out
}

// Mensajes específicos por campo.tag; el resto usa fieldError.
var messages = map[string]string{
	"produto_id.required": "Selecione um produto",
	"quantidade.gt":       "Quantidade deve ser maior que zero",
	"password.required":   "Senha é obrigatória",
}

// Validator envuelve go-playground/validator con nombres de campo JSON.
type Validator struct {
	v *validator.Validate
}

// New crea un Validator listo para usar.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		n, _ := d.Float64()
		return n
	}, decimal.Decimal{})
	return &Validator{v: v}
}

var std = New()

// Struct valida con el validador por defecto del paquete.
func Struct(s any) error {
	return std.Struct(s)
}

// Struct valida s y devuelve *Error si algún campo no cumple.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &Error{Fields: make(map[string]string, len(ve))}
	for _, fe := range ve {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = fieldError(fe)
	}
	return out
}

// fieldError convierte un FieldError en un mensaje legible.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return field + " é obrigatório"
	case "email":
		return field + " deve ser um email válido"
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s deve estar no formato %s", field, "AAAA-MM-DD")
	default:
		return fmt.Sprintf("%s inválido (%s)", field, fe.Tag())
	}
}
