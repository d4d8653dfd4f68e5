// Package validation checks bound request structs against their validate tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/meghashyamc/lexisearch/logger"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrOutOfRange   = errors.New("value or length of field is not in the expected range")
	ErrInvalidQuery = errors.New("invalid query")
)

const tagValidQuery = "valid_query"

// FieldError names the first field that failed and the tag it failed on.
type FieldError struct {
	Field string
	Tag   string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s '%s'", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type Validator struct {
	validator *validator.Validate
	logger    logger.Logger
}

func New(logger logger.Logger) (*Validator, error) {
	v := &Validator{validator: validator.New(), logger: logger}
	v.validator.RegisterTagNameFunc(useJSONFieldNames)

	if err := v.validator.RegisterValidation(tagValidQuery, isValidQuery); err != nil {
		logger.Error("failed to register custom validator function", "tag", tagValidQuery, "err", err.Error())
		return nil, err
	}

	return v, nil
}

// Validate checks i against its validate tags. Only the first failing field
// is reported.
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	first := validationErrs[0]
	v.logger.Warn("validation failed", "field", first.Field(), "tag", first.Tag())

	return &FieldError{Field: first.Field(), Tag: first.Tag(), Err: errorForTag(first.Tag())}
}

func errorForTag(tag string) error {
	switch tag {
	case "required":
		return ErrMissingField
	case "min", "max", "len":
		return ErrOutOfRange
	case tagValidQuery:
		return ErrInvalidQuery
	default:
		return fmt.Errorf("failed on %s", tag)
	}
}

func useJSONFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// isValidQuery rejects queries made only of whitespace.
func isValidQuery(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
