package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hireboard/hireboard/internal/constants"
)

var (
	namePattern        = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s-]+$`)
	emailDomainPattern = regexp.MustCompile(`@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

var validate = newValidator()

// passwordRules is the complexity policy in the order violations are reported.
var passwordRules = "min=" + strconv.Itoa(constants.MinPasswordLength) + ",has_upper,has_lower,has_digit,has_symbol"

var nameRules = "min=" + strconv.Itoa(constants.MinNameLength) + ",max=" + strconv.Itoa(constants.MaxNameLength) + ",person_name"

// ruleErrors maps "<Field>.<tag>" to the error shown to the user. Tags that
// mean the same thing on every field are keyed by the tag alone.
var ruleErrors = map[string]error{
	"email":                       ErrInvalidEmail,
	"email_domain":                ErrInvalidEmail,
	"person_name":                 ErrNameCharacters,
	"has_upper":                   ErrPasswordNoUpper,
	"has_lower":                   ErrPasswordNoLower,
	"has_digit":                   ErrPasswordNoDigit,
	"has_symbol":                  ErrPasswordNoSymbol,
	"Name.min":                    ErrNameTooShort,
	"Name.max":                    ErrNameTooLong,
	"Password.min":                ErrPasswordTooShort,
	"ConfirmPassword.eqfield":     ErrPasswordMismatch,
	"Role.oneof":                  ErrInvalidRole,
	"Status.oneof":                ErrInvalidStatus,
	"RejectionReason.required_if": ErrRejectionReasonRequired,
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations installs the name, email domain and password character
// rules on v.
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"person_name": func(fl validator.FieldLevel) bool {
			return namePattern.MatchString(fl.Field().String())
		},
		"email_domain": func(fl validator.FieldLevel) bool {
			return emailDomainPattern.MatchString(fl.Field().String())
		},
		"has_upper":  containsAny("ABCDEFGHIJKLMNOPQRSTUVWXYZ"),
		"has_lower":  containsAny("abcdefghijklmnopqrstuvwxyz"),
		"has_digit":  containsAny("0123456789"),
		"has_symbol": containsAny(constants.PasswordSymbols),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func containsAny(chars string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.ContainsAny(fl.Field().String(), chars)
	}
}

// ValidationError turns a failed struct validation into the user-facing
// error of its first broken rule. Any missing required field yields
// required; errors that are not validation failures yield ErrInvalidInput.
func ValidationError(err error, required error) error {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return ErrInvalidInput
	}
	for _, f := range failures {
		if f.Tag() == "required" {
			return required
		}
	}
	return ruleError(failures[0].StructField(), failures[0].Tag(), ErrInvalidInput)
}

func ruleError(field, tag string, fallback error) error {
	if err, ok := ruleErrors[field+"."+tag]; ok {
		return err
	}
	if err, ok := ruleErrors[tag]; ok {
		return err
	}
	return fallback
}

// checkVar validates a single value and maps the first broken rule.
func checkVar(field, value, rules string, fallback error) error {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if errors.As(err, &failures) && len(failures) > 0 {
		return ruleError(field, failures[0].Tag(), fallback)
	}
	return fallback
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	return checkVar("Email", email, "required,email,email_domain", ErrInvalidEmail)
}

func validateName(name string) error {
	return checkVar("Name", strings.TrimSpace(name), nameRules, ErrNameCharacters)
}

// validatePassword checks the complexity policy and returns the first violation.
func validatePassword(password string) error {
	return checkVar("Password", password, passwordRules, ErrPasswordTooShort)
}
