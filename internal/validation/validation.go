// Package validation wraps go-playground/validator for Echo and turns its
// failures into an ordered list of field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9.+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// FieldError is a single violated rule on a request field.
type FieldError struct {
	Field   string
	Message string
}

// Error is returned by Validate when at least one field is invalid. Fields
// keep the declaration order of the request struct, one entry per field.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validator satisfies echo.Validator.
type Validator struct {
	v           *validator.Validate
	minPassword int
	maxPassword int
}

// New builds a Validator whose "password" rule accepts lengths in
// [minPassword, maxPassword] characters.
func New(minPassword, maxPassword int) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	must(v.RegisterValidation("username", UsernameValidator))
	must(v.RegisterValidation("password", PasswordLengthValidator(minPassword, maxPassword)))
	return &Validator{v: v, minPassword: minPassword, maxPassword: maxPassword}
}

// Validate runs the struct rules. Validation stops at the first failing rule
// of each field, so a field produces at most one FieldError.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, FieldError{Field: fe.Field(), Message: cv.message(fe)})
	}
	return &Error{Fields: fields}
}

func (cv *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("size must be between 0 and %s", fe.Param())
	case "username":
		return "must be a valid e-mail address"
	case "password":
		return fmt.Sprintf("size must be between %d and %d", cv.minPassword, cv.maxPassword)
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// UsernameValidator accepts lower-case e-mail shaped usernames.
func UsernameValidator(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// PasswordLengthValidator checks the character count of a string field.
func PasswordLengthValidator(minLen, maxLen int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		n := utf8.RuneCountInString(fl.Field().String())
		return n >= minLen && n <= maxLen
	}
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
