// Package forms collects user input for the creation and edit modals and
// enforces the same constraints a browser would before anything is sent.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/skillhub/internal/pkg/apperrors"
	"github.com/yigit/skillhub/internal/pkg/helpers"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "record_id", func(fl validator.FieldLevel) bool {
		id, err := strconv.ParseInt(fl.Field().String(), 10, 64)
		return err == nil && id > 0
	})
	mustRegister(v, "datetime_local", func(fl validator.FieldLevel) bool {
		_, err := helpers.ParseDateTimeLocal(fl.Field().String())
		return err == nil
	})
	return v
}

// mustRegister panics on a bad registration; it only runs at package init.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: register %q validation: %v", tag, err))
	}
}

// Form is an input collector producing a payload of type P.
type Form[P any] interface {
	Validate() error
	Payload() (P, error)
	Reset()
}

// Submit validates f, hands the payload to fn and clears the form. The form
// is cleared whether fn succeeds or not; a validation gap leaves it intact and
// fn is not called.
func Submit[P any](f Form[P], fn func(P) error) error {
	if err := f.Validate(); err != nil {
		return err
	}
	payload, err := f.Payload()
	if err != nil {
		return err
	}
	defer f.Reset()
	return fn(payload)
}

func check(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationGap(fe.Field(), formatValidationError(fe))
	}
	return err
}

var fieldLabels = map[string]string{
	"name":          "Name",
	"email":         "Email",
	"phone":         "Phone",
	"description":   "Description",
	"schedule":      "Schedule",
	"instructor_id": "Instructor ID",
	"course_ids":    "Course IDs",
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	label, ok := fieldLabels[e.Field()]
	if !ok {
		label = e.Field()
	}
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "datetime_local":
		return label + " must be a date and time"
	case "record_id":
		return label + " must be a positive number"
	case "max":
		return label + " must be at most " + e.Param() + " characters"
	default:
		return label + " is invalid"
	}
}
