// Package form decodes and validates the console's HTML forms.
package form

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"

	"office-asset-web/pkg/validation"
)

var (
	decoder  = form.NewDecoder()
	encoder  = form.NewEncoder()
	validate = newValidator()

	// clock is the source of "today" for date rules.
	clock = time.Now
)

// Decode parses the request body of a POST into dst.
func Decode(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return DecodeValues(r.PostForm, dst)
}

// DecodeValues fills dst from values. Unknown keys are ignored.
func DecodeValues(values url.Values, dst any) error {
	if err := decoder.Decode(dst, values); err != nil {
		return fmt.Errorf("decode form: %w", err)
	}
	return nil
}

// EncodeValues is the inverse of DecodeValues; used to carry a draft
// through the URL.
func EncodeValues(src any) (url.Values, error) {
	v, err := encoder.Encode(src)
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	return v, nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, "date", func(fl validator.FieldLevel) bool {
		_, err := validation.ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "adult", func(fl validator.FieldLevel) bool {
		d, err := validation.ParseDate(fl.Field().String())
		return err == nil && validation.ValidateAdult(d, clock()) == nil
	})
	mustRegister(v, "workday", func(fl validator.FieldLevel) bool {
		d, err := validation.ParseDate(fl.Field().String())
		return err == nil && !validation.IsWeekend(d)
	})
	mustRegister(v, "notpast", func(fl validator.FieldLevel) bool {
		d, err := validation.ParseDate(fl.Field().String())
		return err == nil && validation.ValidateNotPast("date", d, clock()) == nil
	})
	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return validation.ValidatePersonName("name", fl.Field().String()) == nil
	})
	v.RegisterStructValidation(joinedAfterBirth, CreateUserForm{}, EditUserForm{})
	v.RegisterStructValidation(pickedBoth, AssignmentForm{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// check validates dto and turns failures into messages keyed by form
// field name (nested fields as "user.code").
func check(dto any, labels map[string]string) (map[string]string, bool) {
	err := validate.Struct(dto)
	if err == nil {
		return map[string]string{}, true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}, false
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = message(fe, labelFor(labels, key))
	}
	return out, false
}

func fieldKey(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func labelFor(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "required_if":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.Int {
			return label + " is required"
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "personname":
		return label + " can only contain letters"
	case "date":
		return label + " is not a valid date"
	case "adult":
		return fmt.Sprintf("User is under %d. Please select a different date", validation.MinimumAge)
	case "workday":
		return label + " is Saturday or Sunday. Please select a different date"
	case "afterdob":
		return label + " is not later than Date of Birth. Please select a different date"
	case "notpast":
		return label + " cannot be in the past"
	case "eqfield":
		return "Passwords do not match"
	case "nefield":
		return "New password must be different from the old password"
	case "oneof":
		return label + " is invalid"
	}
	return label + " is invalid"
}

func joinedAfterBirth(sl validator.StructLevel) {
	var dob, joined string
	switch f := sl.Current().Interface().(type) {
	case CreateUserForm:
		dob, joined = f.Dob, f.JoinedAt
	case EditUserForm:
		dob, joined = f.Dob, f.JoinedAt
	default:
		return
	}
	d, err1 := validation.ParseDate(dob)
	j, err2 := validation.ParseDate(joined)
	if err1 != nil || err2 != nil {
		return
	}
	if !j.After(d) {
		sl.ReportError(joined, "joinedAt", "JoinedAt", "afterdob", "")
	}
}

// dateOf formats t for a date input; the zero time is empty.
func dateOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(validation.DateLayout)
}

// stamp renders an optimistic-concurrency token.
func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func today() string {
	return clock().Format(validation.DateLayout)
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
