package model

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidationError is a user input problem caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors collects every problem found in one form.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the problems keyed by field name.
func (es ValidationErrors) Messages() map[string]string {
	m := make(map[string]string, len(es))
	for _, e := range es {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

var numericOnly = regexp.MustCompile(`^\d+$`)

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsNumericOnly reports whether s consists solely of digits.
func IsNumericOnly(s string) bool {
	return numericOnly.MatchString(strings.TrimSpace(s))
}

// ValidateLookupName checks a name typed into a search or delete box.
// verb names the action in the blank-input message ("search", "delete").
func ValidateLookupName(name, verb string) error {
	if IsBlank(name) {
		return &ValidationError{Field: "name", Message: "Enter name to " + verb}
	}
	if IsNumericOnly(name) {
		return &ValidationError{Field: "name", Message: "Name must include text"}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return !IsBlank(fl.Field().String())
	})
	v.RegisterValidation("hastext", func(fl validator.FieldLevel) bool {
		return !IsNumericOnly(fl.Field().String())
	})
	v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && !d.IsNegative()
	})
	return v
}

// fieldLabels are the human names used in draft validation messages.
var fieldLabels = map[string]string{
	"item_name":     "Item name",
	"category":      "Category",
	"quantity":      "Quantity",
	"price":         "Price",
	"supplier_name": "Supplier name",
	"stock_status":  "Stock status",
}

// ValidateDraft checks that every required create-form field is present and
// well formed.
func ValidateDraft(d Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		label := fieldLabels[field]
		if label == "" {
			label = field
		}

		var msg string
		switch fe.Tag() {
		case "required", "notblank":
			msg = label + " is required"
		case "gte", "nonnegative":
			msg = label + " cannot be negative"
		case "oneof":
			msg = "Choose a valid " + strings.ToLower(label)
		case "hastext":
			msg = label + " must include text"
		default:
			msg = label + " is invalid"
		}
		out = append(out, &ValidationError{Field: field, Message: msg})
	}
	return out
}
