package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/models"
	"github.com/go-playground/validator/v10"
)

// StructValidator validates request structs through their `validate` tags.
// Failures are keyed by the JSON field path (e.g. "address.zipCode").
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator returns a [Validator] with the marketplace-specific
// tags registered.
func NewStructValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// validator.New never fails to register a well-formed tag name.
	_ = v.RegisterValidation("item_category", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.ItemCategories, fl.Field().String())
	})

	return &StructValidator{validate: v}
}

// Validate implements [Validator]. When fields are given only those
// top-level fields are checked.
func (v *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs.Add(fieldPath(fe.Namespace()), fieldMessage(fe))
	}
	return fieldErrs.Err(MsgFixErrors)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return apierr.MsgRequiredField
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "item_category":
		return MsgInvalidCategory
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// humanize turns a camelCase JSON name into a capitalised label:
// "imageUrl" becomes "Image url".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
