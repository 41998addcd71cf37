// Package validate holds the input rules shared by the credential store and
// the job board. Every check returns nil on success or an error wrapping a
// domain sentinel that names the failed rule.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/garnizeh/incollege/internal/domain"
)

const (
	PasswordMinLen = 8
	PasswordMaxLen = 12
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		return Date(fl.Field().String()) == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Password enforces the account password policy: 8 to 12 characters with at
// least one uppercase letter, one digit and one special character.
func Password(p string) error {
	n := utf8.RuneCountInString(p)
	if n < PasswordMinLen {
		return fmt.Errorf("%w: must be at least %d characters", domain.ErrWeakPassword, PasswordMinLen)
	}
	if n > PasswordMaxLen {
		return fmt.Errorf("%w: must be at most %d characters", domain.ErrWeakPassword, PasswordMaxLen)
	}

	var upper, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLetter(r), unicode.IsSpace(r):
		default:
			special = true
		}
	}

	var missing []string
	if !upper {
		missing = append(missing, "an uppercase letter")
	}
	if !digit {
		missing = append(missing, "a digit")
	}
	if !special {
		missing = append(missing, "a special character")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrWeakPassword, strings.Join(missing, ", "))
	}
	return nil
}

// Date checks the dd/mm/yyyy shape: three slash separated numeric fields of
// length 2, 2 and 4. Calendar validity is not checked.
func Date(s string) error {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return fmt.Errorf("%w: date %q must be dd/mm/yyyy", domain.ErrValidation, s)
	}
	for _, p := range parts {
		for _, r := range p {
			if r < '0' || r > '9' {
				return fmt.Errorf("%w: date %q must be dd/mm/yyyy", domain.ErrValidation, s)
			}
		}
	}
	return nil
}

// Struct runs the `validate` tags of s and folds every failure into a single
// ErrValidation.
func Struct(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "numeric":
		return fe.Field() + " must be numeric"
	case "ddmmyyyy":
		return fe.Field() + " must be dd/mm/yyyy"
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
