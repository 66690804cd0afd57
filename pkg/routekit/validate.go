package routekit

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// RequestKey is the context key the validated request is stored under
const RequestKey = "routekit.request"

// FieldError describes one failed validation rule
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

// Validate checks the validate struct tags of v. Failures are a 400 HTTPError
// whose details list every failed field.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return BindError("request", err)
	}

	details := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		details[i] = FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}
	}

	he := ErrBadRequest("validation failed")
	he.Details = details
	he.Internal = err
	return he
}

// fieldName reports fields by the name clients send them under
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "uri", "param", "params", "query", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}
