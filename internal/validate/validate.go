// internal/validate/validate.go
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/learnfield/campus/internal/domain"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Struct checks every tagged rule on the input and returns a
// domain.ValidationError carrying all failing fields, or nil.
func Struct(input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ve := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
		for _, fe := range verrs {
			ve.Fields = append(ve.Fields, domain.FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return ve
	}
	return fmt.Errorf("validating input: %w", err)
}
