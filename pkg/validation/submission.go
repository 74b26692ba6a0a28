package validation

import "strings"

// Submission is a snapshot of trimmed field values taken at submit time.
type Submission map[string]string

// Collect reads every named field through value and trims it.
func Collect(fields []string, value func(name string) string) Submission {
	s := make(Submission, len(fields))
	for _, name := range fields {
		s[name] = strings.TrimSpace(value(name))
	}
	return s
}

func (s Submission) Get(name string) string {
	return s[name]
}

// Subset returns the named values only, for building request bodies.
func (s Submission) Subset(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = s[name]
	}
	return out
}

// FieldError is one message bound to one field.
type FieldError struct {
	Field   string
	Message string
}

// Errors holds at most one message per field, in ruleset order.
type Errors []FieldError

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Has(field string) bool {
	_, ok := e.Message(field)
	return ok
}

func (e Errors) Message(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// Map converts the errors into the field → message shape used by verdicts.
func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	m := make(map[string]string, len(e))
	for _, fe := range e {
		m[fe.Field] = fe.Message
	}
	return m
}

// First returns the first error, if any.
func (e Errors) First() (FieldError, bool) {
	if len(e) == 0 {
		return FieldError{}, false
	}
	return e[0], true
}
