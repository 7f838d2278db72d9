package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// blockSize is the alignment required of the chunk size.
const blockSize = 16

// registerValidators adds the custom tags used by Config with human-readable messages,
// and reports fields by their flag names.
func registerValidators(validate *validator.Validator) error {
	if err := validate.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} is mutually exclusive",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	if err := validate.RegisterValidationAndTranslation(
		"blockaligned",
		validateBlockAligned,
		fmt.Sprintf("{0} must be a multiple of %d", blockSize),
	); err != nil {
		return fmt.Errorf("registering blockaligned validation: %w", err)
	}

	validate.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive checks if two string fields are mutually exclusive.
// Returns false if both fields have non-empty values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() != reflect.String || otherField.Kind() != reflect.String {
		return true
	}

	return field.String() == "" || otherField.String() == ""
}

// validateBlockAligned checks that an integer field is a multiple of the AES block size.
func validateBlockAligned(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() { //nolint:exhaustive // only integers carry the tag
	case reflect.Int, reflect.Int32, reflect.Int64:
		return fl.Field().Int()%blockSize == 0
	default:
		return false
	}
}
