package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/loopp-client/models"
)

// Domain tags.
const (
	TagCategory = "category"
	TagRole     = "role"
)

// FormValidator validates the request models of the client.
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator returns a FormValidator with the domain tags registered.
func NewFormValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return strings.ToLower(f.Name)
		default:
			return name
		}
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(TagCategory, func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation(TagRole, func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).IsValid()
	})

	return &FormValidator{v: v}
}

// Validate checks obj, a struct or a pointer to one. When fields are given
// only those struct fields (Go names) are checked.
func (f *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return ErrUnsupportedType
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	for _, field := range fields {
		if _, ok := val.Type().FieldByName(field); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	var err error
	if len(fields) == 0 {
		err = f.v.StructCtx(ctx, obj)
	} else {
		err = f.v.StructPartialCtx(ctx, obj, fields...)
	}
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	messages := make([]string, 0, len(ve))
	for _, fe := range ve {
		messages = append(messages, fieldError(fe))
	}
	return &ValidationError{Messages: messages}
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required for this role", field)
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case TagCategory:
		return fmt.Sprintf("%s %q is not a known category", field, fe.Value())
	case TagRole:
		return fmt.Sprintf("%s must be one of: %s", field, joinRoles())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func joinRoles() string {
	names := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
