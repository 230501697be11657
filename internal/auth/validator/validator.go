// Package validator registers auth-specific validation rules on the shared
// validator instance.
package validator

import (
	"regexp"

	platformvalidator "orghub_backend/platform/validator"

	"github.com/go-playground/validator/v10"
)

// phoneRegex is the accepted phone format: optional leading +, optional
// country code 1, then 9 to 15 digits.
var phoneRegex = regexp.MustCompile(`^(\+)?1?\d{9,15}$`)

// PhoneMessage is the client-facing message for phone format violations.
const PhoneMessage = "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."

// Register adds the auth module's custom validations to the shared validator.
func Register(val *platformvalidator.Validator) error {
	return val.RegisterValidation("phone", PhoneMessage, validatePhone)
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
