/* validation.go
 * Contains the required field and email format checks run before any network call
 */

package flow

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so errors read like the form fields
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequired validates a form struct and maps the first failure onto a flow error
func checkRequired(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidEmail
}
