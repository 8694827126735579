package validate

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"artspace/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 .-]{8,15}$`)
	reUser  = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,20}$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	_ = val.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := Category(fl.Field().String())
		return ok
	})
	_ = val.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		_, ok := Status(fl.Field().String())
		return ok
	})
	_ = val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, ok := Phone(fl.Field().String())
		return ok
	})
	_ = val.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return reUser.MatchString(fl.Field().String())
	})
	return val
}

// Struct checks a tagged form struct and names the first bad field.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return &FieldError{Field: ves[0].Field(), Tag: ves[0].Tag()}
	}
	return err
}

// FieldError names the first form field that failed validation.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	if e.Tag == "required" {
		return e.Field + " is required"
	}
	return "invalid " + e.Field
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// MaxQ is the longest search term forwarded to the backend, in runes.
const MaxQ = 100

// Q validates a search term: trimmed, non-empty, at most MaxQ runes and free
// of control characters. Punctuation and markup pass through; pages escape
// them on display.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxQ {
		return s, false
	}
	return s, !strings.ContainsFunc(s, unicode.IsControl)
}

// ID validates a backend record identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Category accepts a known painting category; "All" is not a category.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, slices.Contains(domain.Categories, s)
}

func Status(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == domain.StatusAvailable || s == domain.StatusSold
}

// OrderStatus accepts a backend order status or payment status value.
func OrderStatus(s string, payment bool) (string, bool) {
	s = strings.TrimSpace(s)
	if payment {
		return s, slices.Contains(domain.PaymentStatuses, s)
	}
	return s, slices.Contains(domain.OrderStatuses, s)
}
