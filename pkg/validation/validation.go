package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind names a field check.
type Kind string

const (
	KindRequired  Kind = "required"
	KindEmail     Kind = "email"
	KindMinLength Kind = "min_length"
	KindMatches   Kind = "matches"
)

var ErrUnknownCheck = errors.New("validation: unknown check")

// one-or-more non-@, '@', one-or-more non-@, '.', one-or-more non-@
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// Required reports whether value holds anything besides whitespace.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidEmail reports whether value has the minimal syntactic shape of an
// email address. It is not an RFC 5322 parser.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// MinLength reports whether value is at least min characters long.
func MinLength(value string, min int) bool {
	return utf8.RuneCountInString(value) >= min
}

// Matches reports whether value equals other exactly.
func Matches(value, other string) bool {
	return value == other
}

// Check is a single rule applied to one field. Min is used by min_length,
// Field by matches (the name of the field to compare against).
type Check struct {
	Kind    Kind   `yaml:"kind"`
	Min     int    `yaml:"min,omitempty"`
	Field   string `yaml:"field,omitempty"`
	Message string `yaml:"message"`
}

func (c Check) passes(value string, s Submission) bool {
	switch c.Kind {
	case KindRequired:
		return Required(value)
	case KindEmail:
		return ValidEmail(value)
	case KindMinLength:
		return MinLength(value, c.Min)
	case KindMatches:
		return Matches(value, s.Get(c.Field))
	}
	return false
}

func (c Check) validate() error {
	switch c.Kind {
	case KindRequired, KindEmail:
	case KindMinLength:
		if c.Min <= 0 {
			return fmt.Errorf("validation: min_length needs a positive min, got %d", c.Min)
		}
	case KindMatches:
		if c.Field == "" {
			return errors.New("validation: matches needs a field to compare against")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCheck, c.Kind)
	}
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("validation: %s check has no message", c.Kind)
	}
	return nil
}

// FieldRules lists the checks of one field in evaluation order. The first
// failing check produces the field's only error.
type FieldRules struct {
	Field  string
	Checks []Check
}

// Ruleset validates a whole submission. Every field is evaluated; a failure
// in one field never stops the others from being checked.
type Ruleset struct {
	Fields []FieldRules
}

// FieldNames returns the fields covered by the ruleset plus any field a
// matches check refers to, in declaration order.
func (r Ruleset) FieldNames() []string {
	seen := make(map[string]struct{}, len(r.Fields))
	names := make([]string, 0, len(r.Fields))
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, f := range r.Fields {
		add(f.Field)
		for _, c := range f.Checks {
			if c.Kind == KindMatches {
				add(c.Field)
			}
		}
	}
	return names
}

// Validate runs every field's checks against s.
func (r Ruleset) Validate(s Submission) Errors {
	var errs Errors
	for _, f := range r.Fields {
		value := s.Get(f.Field)
		for _, c := range f.Checks {
			if !c.passes(value, s) {
				errs = append(errs, FieldError{Field: f.Field, Message: c.Message})
				break
			}
		}
	}
	return errs
}

// Verify reports configuration mistakes: unknown kinds, missing parameters,
// duplicate fields.
func (r Ruleset) Verify() error {
	seen := make(map[string]struct{}, len(r.Fields))
	for _, f := range r.Fields {
		if f.Field == "" {
			return errors.New("validation: field without a name")
		}
		if _, dup := seen[f.Field]; dup {
			return fmt.Errorf("validation: field %q declared twice", f.Field)
		}
		seen[f.Field] = struct{}{}
		for _, c := range f.Checks {
			if err := c.validate(); err != nil {
				return fmt.Errorf("field %q: %w", f.Field, err)
			}
		}
	}
	return nil
}
