package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oarkflow/authforms/pkg/validation"
)

func TestBuiltinDefinitions(t *testing.T) {
	if diff := cmp.Diff([]string{"login", "register"}, Default().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	login := Login()
	if login.Endpoint != "/api/check_credentials" || login.OnSuccess != ActionRedirect {
		t.Fatalf("unexpected login definition: %+v", login)
	}
	if diff := cmp.Diff([]string{"email", "password"}, login.FieldNames()); diff != "" {
		t.Fatalf("login fields mismatch (-want +got):\n%s", diff)
	}

	register := Register()
	if register.Endpoint != "/api/check_register" || register.OnSuccess != ActionSubmit || register.Action != "/register" {
		t.Fatalf("unexpected register definition: %+v", register)
	}
	wantFields := []string{"nombre", "apellido", "email", "password", "confirm_password"}
	if diff := cmp.Diff(wantFields, register.FieldNames()); diff != "" {
		t.Fatalf("register fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginRules(t *testing.T) {
	rules := Login().Rules()
	cases := []struct {
		name string
		in   validation.Submission
		want []string
	}{
		{"empty", validation.Submission{"email": "", "password": ""}, []string{"email", "password"}},
		{"bad email", validation.Submission{"email": "abc", "password": "x"}, []string{"email"}},
		{"ok", validation.Submission{"email": "a@b.c", "password": "x"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, fe := range rules.Validate(tc.in) {
				got = append(got, fe.Field)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegisterPasswordMessages(t *testing.T) {
	rules := Register().Rules()
	base := validation.Submission{"nombre": "Ana", "apellido": "Pérez", "email": "a@b.c"}

	short := copySubmission(base)
	short["password"], short["confirm_password"] = "abcde", "abcde"
	msg, ok := rules.Validate(short).Message("password")
	if !ok || !strings.Contains(msg, "6 caracteres") {
		t.Fatalf("expected length message, got %q", msg)
	}

	mismatch := copySubmission(base)
	mismatch["password"], mismatch["confirm_password"] = "abcdef", "abcdef2"
	errs := rules.Validate(mismatch)
	if errs.Has("password") || !errs.Has("confirm_password") {
		t.Fatalf("expected only a confirmation error, got %v", errs)
	}
}

func TestBody(t *testing.T) {
	s := validation.Submission{"nombre": "Ana", "email": "a@b.c", "password": "abcdef"}
	if diff := cmp.Diff(map[string]string{"email": "a@b.c"}, Register().Body(s)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsBadDefinitions(t *testing.T) {
	cases := map[string]string{
		"no endpoint": `forms: [{name: x, send: [a], on_success: redirect}]`,
		"bad action":  `forms: [{name: x, endpoint: /e, send: [a], on_success: teleport}]`,
		"no target":   `forms: [{name: x, endpoint: /e, send: [a], on_success: submit}]`,
		"bad check":   `forms: [{name: x, endpoint: /e, send: [a], on_success: redirect, fields: [{name: a, checks: [{kind: nope, message: m}]}]}]`,
		"duplicate":   `forms: [{name: x, endpoint: /e, send: [a], on_success: redirect}, {name: x, endpoint: /e, send: [a], on_success: redirect}]`,
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("profile"); !errors.Is(err, ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
}

func copySubmission(s validation.Submission) validation.Submission {
	out := make(validation.Submission, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func TestSentRules(t *testing.T) {
	rules := Register().SentRules()
	if diff := cmp.Diff([]string{"email"}, rules.FieldNames()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	errs := rules.Validate(validation.Submission{"email": "nope"})
	if msg, _ := errs.Message("email"); msg != "Por favor, ingresa un correo electrónico válido." {
		t.Fatalf("unexpected message %q", msg)
	}
}
