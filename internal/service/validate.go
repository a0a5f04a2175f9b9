package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"task-manager/pkg/apperr"
	"task-manager/pkg/optional"
)

const minPassword = 3

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// invalid turns validator failures into one validation error naming every
// offending field.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindValidation, err, "invalid request")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe.Field(), fe.Tag(), fe.Param()))
	}
	return apperr.Validation("%s", strings.Join(msgs, "; "))
}

func describe(field, tag, param string) string {
	switch tag {
	case "required", "notblank":
		return field + " must not be blank"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	default:
		return fmt.Sprintf("%s failed %s", field, tag)
	}
}

// patchVar validates a supplied patch value against tag.
func patchVar(v *validator.Validate, field string, value any, tag string) error {
	err := v.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation("%s", describe(field, verrs[0].Tag(), verrs[0].Param()))
	}
	return apperr.Wrap(apperr.KindValidation, err, "invalid %s", field)
}

// setRequired applies a patch field that may not be cleared. A supplied
// value is checked against tag before it is written to dst.
func setRequired[T any](v *validator.Validate, field string, f optional.Field[T], tag string, dst *T) error {
	if f.IsNull() {
		return apperr.Validation("%s must not be null", field)
	}
	val, ok := f.Get()
	if !ok {
		return nil
	}
	if tag != "" {
		if err := patchVar(v, field, val, tag); err != nil {
			return err
		}
	}
	*dst = val
	return nil
}

// setNullable applies a patch field where null clears the stored value.
func setNullable[T any](f optional.Field[T], dst **T) {
	if f.IsSet() {
		*dst = f.Ptr()
	}
}
