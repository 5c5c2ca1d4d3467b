// Package validation wraps go-playground/validator with the marketplace's
// custom rules and user-facing messages. The same Validator serves services
// (Struct) and Echo (Validate).
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// MinimumAge is the youngest age accepted at signup.
const MinimumAge = 18

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+91\s?\d{5}\s?\d{5}$`)
)

// messages maps StructName.Field to the message shown under that field.
var messages = map[string]string{
	"SignupInput.Email":         "Please enter a valid email address",
	"SignupInput.Password":      "Password must be at least 6 characters",
	"SignupInput.ContactNumber": "Please enter a valid Indian phone number (+91 XXXXXXXXXX)",
	"SignupInput.Age":           "You must be at least 18 years old",
	"SignupInput.Role":          "Please select a role (Actor or Director/Producer)",

	"LoginInput.Email":    "Please enter a valid email address",
	"LoginInput.Password": "Please enter your password",

	"SavePortfolioInput.Title":  "Please enter a portfolio title",
	"SavePortfolioInput.Bio":    "Please enter your bio",
	"SavePortfolioInput.Skills": "Please enter your skills",

	"PostAuditionInput.ProjectTitle":    "Please enter project title",
	"PostAuditionInput.RoleTitle":       "Please enter role title",
	"PostAuditionInput.RoleDescription": "Please enter role description",
	"PostAuditionInput.Location":        "Please enter audition location",
	"PostAuditionInput.Deadline":        "Please select a deadline",

	"PostPromotionInput.EventTitle":  "Please enter event title",
	"PostPromotionInput.EventType":   "Please select event type",
	"PostPromotionInput.Description": "Please enter event description",
	"PostPromotionInput.Venue":       "Please enter venue",
	"PostPromotionInput.EventDate":   "Please select event date",
	"PostPromotionInput.EventTime":   "Please select event time",
	"PostPromotionInput.ContactInfo": "Please enter contact information",
}

// Validator satisfies echo.Validator and returns *domain.ValidationError.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "kalakar_email", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	mustRegister(v, "in_phone", func(fl validator.FieldLevel) bool {
		return IsIndianPhone(fl.Field().String())
	})
	mustRegister(v, "adult_age", func(fl validator.FieldLevel) bool {
		return IsAdultAge(fl.Field().String())
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Validate satisfies the echo.Validator interface.
func (ev *Validator) Validate(i any) error {
	return ev.Struct(i)
}

// Struct checks every field of i and reports all failures together.
func (ev *Validator) Struct(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range ve {
		out.Add(FieldName(fe.StructField()), fieldError(fe))
	}
	return out.OrNil()
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	if msg, ok := messages[trimNamespace(fe.StructNamespace())]; ok {
		return msg
	}
	field := FieldName(fe.StructField())
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// trimNamespace keeps the last two segments, so nested structs still match.
func trimNamespace(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) <= 2 {
		return ns
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

// FieldName converts a Go field name to the snake_case key used in responses.
func FieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool { return emailPattern.MatchString(s) }

// IsIndianPhone accepts +91 followed by ten digits, optionally grouped 5+5.
func IsIndianPhone(s string) bool { return phonePattern.MatchString(s) }

// IsAdultAge accepts an integer of at least MinimumAge.
func IsAdultAge(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= MinimumAge
}
