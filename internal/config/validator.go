package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ethanolivertroy/dep-check/internal/ecosystem"
	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		known := make(map[string]struct{})
		for _, name := range ecosystem.KnownNames() {
			known[name] = struct{}{}
		}
		_ = v.RegisterValidation("ecosystem", func(fl validator.FieldLevel) bool {
			_, ok := known[fl.Field().String()]
			return ok
		})

		// Report fields by their config-file names
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks cfg against its schema.
func Validate(cfg *Config) error {
	if cfg == nil {
		return apperrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	return nil
}

func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := strings.TrimPrefix(ve.Namespace(), "Config.")
		msg := fmt.Sprintf("value %q failed validation for tag '%s'", fmt.Sprint(ve.Value()), ve.Tag())
		if ve.Tag() == "ecosystem" {
			msg = fmt.Sprintf("unknown ecosystem %q (known: %s)", fmt.Sprint(ve.Value()), strings.Join(ecosystem.KnownNames(), ", "))
		}
		return apperrors.NewValidationError(field, msg, err)
	}

	return apperrors.NewValidationError("config", err.Error(), err)
}
