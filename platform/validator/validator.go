// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field/message pair reported to API clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Default messages per validation tag. Domain packages register messages for
// their custom tags via RegisterValidation.
var defaultMessages = map[string]string{
	"required": "This field is required.",
	"email":    "Enter a valid email address.",
	"uuid":     "Must be a valid UUID.",
}

const fallbackMessage = "This value is invalid."

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v        *validator.Validate
	messages map[string]string
}

// New creates a new Validator instance. Field names in reported errors use
// the struct's json tags so they match the wire format.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	messages := make(map[string]string, len(defaultMessages))
	for tag, message := range defaultMessages {
		messages[tag] = message
	}

	return &Validator{v: v, messages: messages}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function together with the
// client-facing message reported when it fails.
func (val *Validator) RegisterValidation(tag, message string, fn validator.Func) error {
	val.messages[tag] = message
	return val.v.RegisterValidation(tag, fn)
}

// Fields validates a struct and translates any violations into a uniform list
// of field/message pairs, one entry per violated field/message pair.
// It returns nil when the struct is valid.
func (val *Validator) Fields(s interface{}) []FieldError {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return []FieldError{{Field: "", Message: fallbackMessage}}
	}

	fields := make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		message, ok := val.messages[violation.Tag()]
		if !ok {
			message = fallbackMessage
		}
		fields = append(fields, FieldError{Field: violation.Field(), Message: message})
	}
	return fields
}
