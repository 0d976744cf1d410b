// Package validation checks CV fields and entries. Results are advisory
// values for the UI; nothing here returns a Go error for invalid input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"cv-builder/internal/model"

	"github.com/go-playground/validator/v10"
)

// Format is the shape a non-empty value must have.
type Format int

const (
	FormatNone Format = iota
	FormatEmail
	FormatPhone
	FormatURL
	FormatLinkedIn
	FormatGitHub
	FormatDate
	FormatPersonName
	FormatContact
)

// Field describes the rules for one input.
type Field struct {
	Label       string
	Required    bool
	RequiredMsg string
	Format      Format
	Min, Max    int
	// After names the sibling start date this date must strictly follow.
	After string
	// Unless names a sibling flag that switches the ordering check off.
	Unless string
}

// Siblings carries the other values of the entry a field belongs to.
type Siblings map[string]string

// Result is the outcome for one field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

var valid = Result{Valid: true}

func fail(msg string) Result { return Result{Message: msg} }

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)
	httpURLRe  = regexp.MustCompile(`^https?://`)
	linkedInRe = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/`)
	gitHubRe   = regexp.MustCompile(`^https?://(www\.)?github\.com/`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	regex := func(re *regexp.Regexp) validator.Func {
		return func(fl validator.FieldLevel) bool { return re.MatchString(fl.Field().String()) }
	}
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
	must("mailbox", regex(emailRe))
	must("phone", regex(phoneRe))
	must("httpurl", regex(httpURLRe))
	must("linkedin", regex(linkedInRe))
	must("github", regex(gitHubRe))
	must("mmyyyy", func(fl validator.FieldLevel) bool {
		_, _, ok := model.ParseMonth(fl.Field().String())
		return ok
	})
	must("personname", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
				return false
			}
		}
		return true
	})
	return v
}

func is(value, tag string) bool { return validate.Var(value, tag) == nil }

var formats = map[Format]struct {
	tag string
	msg string
}{
	FormatEmail:      {"mailbox", "Please enter a valid email address"},
	FormatPhone:      {"phone", "Please enter a valid phone number"},
	FormatURL:        {"httpurl", "Please enter a valid URL"},
	FormatLinkedIn:   {"linkedin", "Please enter a valid LinkedIn URL"},
	FormatGitHub:     {"github", "Please enter a valid GitHub URL"},
	FormatDate:       {"mmyyyy", "Date must be in MM/YYYY format"},
	FormatPersonName: {"personname", "Full name should contain only letters and spaces"},
}

// Validate checks value against f. Empty optional values are valid.
func Validate(f Field, value string, sib Siblings) Result {
	v := strings.TrimSpace(value)
	if v == "" {
		if f.Required {
			if f.RequiredMsg != "" {
				return fail(f.RequiredMsg)
			}
			return fail(f.Label + " is required")
		}
		return valid
	}

	switch f.Format {
	case FormatNone:
	case FormatContact:
		if !is(v, "mailbox") && !is(v, "phone") {
			return fail("Please provide a valid email or phone number")
		}
	default:
		rule := formats[f.Format]
		if !is(v, rule.tag) {
			return fail(rule.msg)
		}
	}

	n := utf8.RuneCountInString(v)
	if f.Min > 0 && n < f.Min {
		return fail(fmt.Sprintf("%s should be at least %d characters", f.Label, f.Min))
	}
	if f.Max > 0 && n > f.Max {
		return fail(fmt.Sprintf("%s should not exceed %d characters", f.Label, f.Max))
	}

	if f.After != "" && sib[f.Unless] != "true" {
		start := strings.TrimSpace(sib[f.After])
		if _, _, ok := model.ParseMonth(start); ok && !model.MonthBefore(start, v) {
			return fail("End date must be after start date")
		}
	}
	return valid
}

// ListField describes a required collection of short texts (bullets, tags).
type ListField struct {
	RequiredMsg string
	ItemMin     int
	ItemMinMsg  string
	ItemMax     int
}

// ValidateList checks that at least one item is non-empty and that every
// non-empty item fits the length bounds.
func ValidateList(f ListField, items []string) Result {
	filled := 0
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		filled++
		n := utf8.RuneCountInString(it)
		if f.ItemMin > 0 && n < f.ItemMin {
			return fail(f.ItemMinMsg)
		}
		if f.ItemMax > 0 && n > f.ItemMax {
			return fail(fmt.Sprintf("Each item should not exceed %d characters", f.ItemMax))
		}
	}
	if filled == 0 && f.RequiredMsg != "" {
		return fail(f.RequiredMsg)
	}
	return valid
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) add(name string, r Result) {
	if !r.Valid {
		fe[name] = r.Message
	}
}

func flag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
